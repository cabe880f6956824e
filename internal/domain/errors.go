package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserInactive            = errors.New("user is inactive")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrDuplicateEmail          = errors.New("email already exists")
	ErrDuplicateName           = errors.New("name already exists")
	ErrDuplicateEAN            = errors.New("ean already exists")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed            = errors.New("file upload to storage failed")
	ErrCategoryCycle           = errors.New("category cannot be its own ancestor")
	ErrInvalidDateRange        = errors.New("end date is before start date")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidOrderMethod      = errors.New("invalid order method")
	ErrProductNotFound         = errors.New("product not found")
	ErrSupplierNotFound        = errors.New("supplier not found")
	ErrLineItemNotFound        = errors.New("line item not found")
	ErrDuplicateLineItem       = errors.New("line item id already in use")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrEmptyItemUpdate         = errors.New("no line item fields to update")
	ErrInvalidVATRate          = errors.New("vat rate must be between 0 and 100")
	ErrInvalidPurchaseType     = errors.New("invalid purchase type")
	ErrPurchaseNotEditable     = errors.New("purchase is no longer editable")
	ErrInvalidStatusTransition = errors.New("invalid purchase status transition")
	ErrNotAnOffer              = errors.New("purchase is not an offer")
	ErrSupplierEmailMissing    = errors.New("supplier has no email address")
	ErrMailDeliveryFailed      = errors.New("purchase order mail could not be delivered")
	ErrInUse                   = errors.New("resource is still referenced")
)
