package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// EmailRegex validates email format
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// ItemIDRegex validates store-generated item id format
	ItemIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateItemName validates an inventory item name
func ValidateItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return fmt.Errorf("name is too long (max 200 characters)")
	}
	return nil
}

// ValidateCategory validates an item category label
func ValidateCategory(category string) error {
	category = strings.TrimSpace(category)
	if utf8.RuneCountInString(category) > 100 {
		return fmt.Errorf("category is too long (max 100 characters)")
	}
	return nil
}

// ValidateItemID validates an item id path parameter
func ValidateItemID(id string) error {
	if id == "" {
		return fmt.Errorf("item id is required")
	}
	if len(id) > 128 {
		return fmt.Errorf("item id is too long (max 128 characters)")
	}
	if !ItemIDRegex.MatchString(id) {
		return fmt.Errorf("item id contains invalid characters (only letters, numbers, _, - allowed)")
	}
	return nil
}
