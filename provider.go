package floatui

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProvider is returned when a part looks up its root in a context that
// does not carry one.
var ErrNoProvider = errors.New("floatui: used outside provider")

type providerKey[T any] struct{}

func provide[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, providerKey[T]{}, v)
}

func lookup[T comparable](ctx context.Context, what string) (T, error) {
	var zero T
	v, ok := ctx.Value(providerKey[T]{}).(T)
	if !ok || v == zero {
		return zero, fmt.Errorf("%w: %s part needs an enclosing %s", ErrNoProvider, what, what)
	}
	return v, nil
}

func mustLookup[T comparable](ctx context.Context, what string) T {
	v, err := lookup[T](ctx, what)
	if err != nil {
		panic(err)
	}
	return v
}

// WithPopupContext returns a context carrying p for the popup's parts.
func WithPopupContext(ctx context.Context, p *Popup) context.Context {
	return provide(ctx, p)
}

// PopupFromContext returns the Popup stored by WithPopupContext, or an
// error wrapping ErrNoProvider.
func PopupFromContext(ctx context.Context) (*Popup, error) {
	return lookup[*Popup](ctx, "Popup")
}

// MustPopupFromContext is like PopupFromContext but panics when no Popup
// is provided.
func MustPopupFromContext(ctx context.Context) *Popup {
	return mustLookup[*Popup](ctx, "Popup")
}

// WithMenuContext returns a context carrying m for the menu's parts.
func WithMenuContext(ctx context.Context, m *Menu) context.Context {
	return provide(ctx, m)
}

// MenuFromContext returns the Menu stored by WithMenuContext, or an error
// wrapping ErrNoProvider.
func MenuFromContext(ctx context.Context) (*Menu, error) {
	return lookup[*Menu](ctx, "Menu")
}

// WithSelectContext returns a context carrying s for the select's parts.
func WithSelectContext(ctx context.Context, s *Select) context.Context {
	return provide(ctx, s)
}

// SelectFromContext returns the Select stored by WithSelectContext, or an
// error wrapping ErrNoProvider.
func SelectFromContext(ctx context.Context) (*Select, error) {
	return lookup[*Select](ctx, "Select")
}
