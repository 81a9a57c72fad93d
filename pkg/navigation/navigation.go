package navigation

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/pkg/validator"
)

var (
	// ErrConfiguration marks every error caused by a panel built from bad input.
	ErrConfiguration = errors.New("navigation: configuration error")
	ErrInvalidItem   = fmt.Errorf("%w: invalid item", ErrConfiguration)
	ErrNoNavigator   = fmt.Errorf("%w: navigator is required", ErrConfiguration)
	ErrItemNotFound  = errors.New("navigation: item not found")
	ErrUnknownEvent  = errors.New("navigation: unknown event")
)

// Item represents a navigation entry rendered by the panel. Items are supplied
// by the host when the panel is mounted and are displayed in the order given.
type Item struct {
	Label       string `json:"label" yaml:"label" validate:"required,notblank"`
	TargetID    string `json:"target_id" yaml:"target_id" validate:"required,notblank"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Navigator is the facility invoked when an item is activated.
type Navigator interface {
	Navigate(targetID string) error
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(targetID string) error

func (f NavigatorFunc) Navigate(targetID string) error {
	return f(targetID)
}

// ValidateItems checks every item and reports the first malformed one.
func ValidateItems(items []Item) error {
	for i, item := range items {
		if err := validator.Validate(item); err != nil {
			label := strings.TrimSpace(item.Label)
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("%w %s: %v", ErrInvalidItem, label, err)
		}
	}
	return nil
}
