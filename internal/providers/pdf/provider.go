// Package pdf renders created invoices as 80mm thermal-receipt documents.
// It consumes the core's output and never writes invoice rows.
package pdf

import (
	"github.com/smallbiznis/billfold/internal/config"
	"go.uber.org/fx"
)

type Provider struct {
	profile *config.ShopProfileHolder
}

func NewProvider(profile *config.ShopProfileHolder) *Provider {
	return &Provider{profile: profile}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(NewProvider),
)
