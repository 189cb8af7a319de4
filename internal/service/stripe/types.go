package stripe

import (
	"fmt"
)

type PaymentIntentParams struct {
	Amount             int64
	Currency           string
	PaymentMethodTypes []string
	Metadata           map[string]string
}

type PaymentIntent struct {
	ID                 string   `json:"id"`
	Object             string   `json:"object"`
	Amount             int64    `json:"amount"`
	Currency           string   `json:"currency"`
	ClientSecret       string   `json:"client_secret"`
	Status             string   `json:"status"`
	PaymentMethodTypes []string `json:"payment_method_types"`
}

type APIError struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	StatusCode int      `json:"-"`
	Err        APIError `json:"error"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("stripe api error (%d): %s: %s", e.StatusCode, e.Err.Type, e.Err.Message)
}
