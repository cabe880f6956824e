package domain

// UserRole defines what an operator may do.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:    true,
	RoleEmployee: true,
}

// PurchaseType distinguishes committed purchases from offers.
type PurchaseType string

const (
	PurchaseTypePurchase PurchaseType = "purchase"
	PurchaseTypeOffer    PurchaseType = "offer"
)

// ValidPurchaseTypes is the set of accepted purchase types.
var ValidPurchaseTypes = map[PurchaseType]bool{
	PurchaseTypePurchase: true,
	PurchaseTypeOffer:    true,
}

// PurchaseStatus is the lifecycle of a purchase.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// ValidPurchaseStatuses is the set of accepted purchase statuses.
var ValidPurchaseStatuses = map[PurchaseStatus]bool{
	PurchaseStatusPending:   true,
	PurchaseStatusCompleted: true,
	PurchaseStatusCancelled: true,
}

// HistoryAction names a change recorded in a purchase's history.
type HistoryAction string

const (
	HistoryActionCreate     HistoryAction = "create"
	HistoryActionUpdate     HistoryAction = "update"
	HistoryActionAddItem    HistoryAction = "add_item"
	HistoryActionUpdateItem HistoryAction = "update_item"
	HistoryActionRemoveItem HistoryAction = "remove_item"
	HistoryActionStatus     HistoryAction = "status"
	HistoryActionConvert    HistoryAction = "convert"
	HistoryActionSend       HistoryAction = "send"
)

// PaymentMethod is how a supplier is paid.
type PaymentMethod string

const (
	PaymentMethodBank PaymentMethod = "bank"
	PaymentMethodKas  PaymentMethod = "kas"
	PaymentMethodPin  PaymentMethod = "pin"
)

// ValidPaymentMethods is the set of accepted payment methods. The empty value is allowed.
var ValidPaymentMethods = map[PaymentMethod]bool{
	"":                true,
	PaymentMethodBank: true,
	PaymentMethodKas:  true,
	PaymentMethodPin:  true,
}

// OrderMethod is how orders reach a supplier.
type OrderMethod string

const (
	OrderMethodMail     OrderMethod = "mail"
	OrderMethodWhatsapp OrderMethod = "whatsapp"
	OrderMethodPhone    OrderMethod = "phone"
)

// ValidOrderMethods is the set of accepted order methods. The empty value is allowed.
var ValidOrderMethods = map[OrderMethod]bool{
	"":                  true,
	OrderMethodMail:     true,
	OrderMethodWhatsapp: true,
	OrderMethodPhone:    true,
}

// ImageStatus represents the lifecycle of an uploaded image.
type ImageStatus string

const (
	ImageStatusPending  ImageStatus = "pending"
	ImageStatusUploaded ImageStatus = "uploaded"
	ImageStatusFailed   ImageStatus = "failed"
)

// AllowedImageExtensions maps file extensions (without dot) to MIME content type.
var AllowedImageExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// AllowedImageContentTypes is the set of sniffed content types accepted for upload.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}
