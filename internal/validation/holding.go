package validation

import (
	"strings"

	"github.com/bafang/portfolio-tracker/internal/api/request"
	"github.com/bafang/portfolio-tracker/internal/model"
)

func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	errors := make(map[string]string)

	// Required fields
	if strings.TrimSpace(req.ProductCode) == "" {
		errors["productCode"] = "productCode is required"
	} else if len(req.ProductCode) > 20 {
		errors["productCode"] = "productCode must be 20 characters or less"
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be greater than zero"
	}

	if req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	// Optional but constrained
	if req.ProductType != "" && !model.ProductCategory(req.ProductType).Valid() {
		errors["productType"] = "productType must be stock, etf or fund"
	}

	if len(req.ProductName) > 100 {
		errors["productName"] = "productName must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateHolding(req request.UpdateHoldingRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be greater than zero"
	}

	if req.PurchasePrice != nil && *req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	if req.ProductName != nil {
		if strings.TrimSpace(*req.ProductName) == "" {
			errors["productName"] = "productName cannot be empty"
		} else if len(*req.ProductName) > 100 {
			errors["productName"] = "productName must be 100 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateCalendarCredentials(req request.CalendarCredentialsRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
