package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "invalid customer",
			err:  ErrInvalidCustomer,
			want: true,
		},
		{
			name: "invalid product",
			err:  ErrInvalidProduct,
			want: true,
		},
		{
			name: "insufficient stock",
			err:  ErrInsufficientStock,
			want: true,
		},
		{
			name: "duplicate product",
			err:  ErrDuplicateProduct,
			want: true,
		},
		{
			name: "missing customer id",
			err:  ErrCustomerRequired,
			want: true,
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("create order: %w", ErrInsufficientStock),
			want: true,
		},
		{
			name: "joined validation error",
			err:  errors.Join(ErrInvalidProduct, errors.New("additional context")),
			want: true,
		},
		{
			name: "storage failure",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "not found is not a rejection",
			err:  ErrOrderNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidationError(tt.err)
			if got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}
