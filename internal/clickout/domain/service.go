package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Redirect resolves the outbound target for a product reference and
	// records the click. The redirect must not fail because logging did.
	Redirect(ctx context.Context, req RedirectRequest) (*RedirectResult, error)
}

type RedirectRequest struct {
	Ref       string
	Referrer  string
	UserAgent string
}

type RedirectResult struct {
	TargetURL string
	StoreID   string
}

var ErrNotFound = errors.New("not_found")
