// Package models defines the core data structures for vault entities,
// users, and share records.
package models

import "time"

// Role identifies the permission level of a user account.
type Role string

const (
	// RoleAdmin grants access to user administration endpoints.
	RoleAdmin Role = "Admin"
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "User"
)

// DefaultResetPassword is assigned by administrative password resets.
// A user whose password still equals this value is forced to choose a
// new one at login.
const DefaultResetPassword = "password123"

// CustomField is one user-defined label/value pair attached to a credential.
// Order is significant and preserved.
type CustomField struct {
	// Label is the display name of the field.
	Label string `json:"label"`
	// Value holds the field content.
	Value string `json:"value"`
}

// Credential is a stored login entry.
type Credential struct {
	// ID is the unique identifier, assigned at creation.
	ID string `json:"id"`
	// Title is the display name of the entry (e.g. "GitHub").
	Title string `json:"title"`
	// Username is the account identifier for the target site.
	Username string `json:"username"`
	// Password is stored in plaintext; the vault holds session state only.
	Password string `json:"password"`
	// URL is the address of the target site.
	URL string `json:"url"`
	// Tags is a set of free-form labels used for filtering.
	Tags []string `json:"tags"`
	// Notes holds optional free text.
	Notes string `json:"notes,omitempty"`
	// CustomFields is an ordered sequence of extra label/value pairs.
	CustomFields []CustomField `json:"customFields,omitempty"`
	// LastModified is re-stamped on every mutation.
	LastModified time.Time `json:"lastModified"`
}

// NoteCategory is the fixed set of note categories.
type NoteCategory string

const (
	NoteCategoryWork        NoteCategory = "Work"
	NoteCategoryPersonal    NoteCategory = "Personal"
	NoteCategoryDevelopment NoteCategory = "Development"
	NoteCategoryOther       NoteCategory = "Other"
)

// Note is a stored secure note.
type Note struct {
	// ID is the unique identifier, assigned at creation.
	ID string `json:"id"`
	// Title is the display name of the note.
	Title string `json:"title"`
	// Category is one of the fixed NoteCategory values.
	Category NoteCategory `json:"category"`
	// Content holds the note body.
	Content string `json:"content"`
	// LastModified is re-stamped on every mutation.
	LastModified time.Time `json:"lastModified"`
}

// License is a stored software license. Licenses are not shareable.
type License struct {
	// ID is the unique identifier, assigned at creation.
	ID string `json:"id"`
	// Name is the product name.
	Name string `json:"name"`
	// ProductKey is the license key.
	ProductKey string `json:"productKey"`
	// PurchaseDate is when the license was bought.
	PurchaseDate string `json:"purchaseDate"`
	// ExpiryDate is when the license lapses.
	ExpiryDate string `json:"expiryDate"`
}

// User is an account in the user directory.
type User struct {
	// ID is the unique identifier, assigned at creation.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Email is the login identifier. Lookups are case-sensitive.
	Email string `json:"email"`
	// Password is compared in plaintext; no hashing exists in this system.
	Password string `json:"password,omitempty"`
	// Role is Admin or User.
	Role Role `json:"role"`
	// Active gates login; inactive accounts are rejected.
	Active bool `json:"active"`
	// SecurityQuestion is the optional recovery question.
	SecurityQuestion string `json:"securityQuestion,omitempty"`
	// SecurityAnswer is compared case-insensitively during recovery.
	SecurityAnswer string `json:"securityAnswer,omitempty"`
}

// ItemType discriminates what kind of entity a share record references.
type ItemType string

const (
	// ItemTypeCredential marks a share referencing a credential.
	ItemTypeCredential ItemType = "credential"
	// ItemTypeNote marks a share referencing a note.
	ItemTypeNote ItemType = "note"
)

// ShareStatus is the lifecycle state of a share record.
type ShareStatus string

const (
	// SharePending means the recipient has not acted on the share yet.
	SharePending ShareStatus = "pending"
	// ShareAccepted is terminal except for deletion.
	ShareAccepted ShareStatus = "accepted"
)

// SharedItem grants a recipient visibility of one item. It stores a typed
// reference (ItemID + ItemType) resolved against the live stores at read
// time, never a copy of the item data.
type SharedItem struct {
	// ID is the unique identifier of the share record.
	ID string `json:"id"`
	// SenderEmail is the sharing user.
	SenderEmail string `json:"senderEmail"`
	// RecipientEmail is the user the item is shared with.
	RecipientEmail string `json:"recipientEmail"`
	// ItemID references a credential or note in its owning store.
	ItemID string `json:"itemId"`
	// ItemType must match the store ItemID actually lives in.
	ItemType ItemType `json:"itemType"`
	// Status is pending or accepted.
	Status ShareStatus `json:"status"`
	// CreatedAt orders inbox and outbox views, newest first.
	CreatedAt time.Time `json:"createdAt"`
}

// VaultExport is the import/export document: exactly three top-level arrays.
type VaultExport struct {
	Credentials []Credential `json:"credentials"`
	Notes       []Note       `json:"notes"`
	Licenses    []License    `json:"licenses"`
}
