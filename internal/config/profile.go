package config

import (
	"log"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ShopProfile is the business identity printed on receipts. Shops edit
// profile.yml while the app is running; changes apply to the next print
// without a restart.
type ShopProfile struct {
	Name    string `mapstructure:"name" json:"name"`
	Address string `mapstructure:"address" json:"address"`
	Phone   string `mapstructure:"phone" json:"phone"`
	Footer  string `mapstructure:"footer" json:"footer"`
}

func DefaultShopProfile() ShopProfile {
	return ShopProfile{
		Name:   "Billfold Store",
		Footer: "Thank you, visit again!",
	}
}

type ShopProfileHolder struct {
	current atomic.Value // holds ShopProfile
}

func NewShopProfileHolder(cfg Config) (*ShopProfileHolder, error) {
	v := viper.New()

	v.SetConfigName("profile")
	v.SetConfigType("yml")
	v.AddConfigPath(cfg.ProfilePath)
	v.AddConfigPath("/etc/billfold")

	holder := &ShopProfileHolder{}
	holder.current.Store(DefaultShopProfile())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No profile file yet; defaults stand until one appears.
		return holder, nil
	}

	profile, err := decodeProfile(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(profile)

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeProfile(v)
		if err != nil {
			log.Printf("shop profile reload failed (%s): %v", e.Name, err)
			return
		}
		holder.current.Store(updated)
	})
	v.WatchConfig()

	return holder, nil
}

func (h *ShopProfileHolder) Get() ShopProfile {
	return h.current.Load().(ShopProfile)
}

// Set replaces the active profile. Used by tests and by deployments that
// manage the profile out of band.
func (h *ShopProfileHolder) Set(p ShopProfile) {
	h.current.Store(p)
}

func decodeProfile(v *viper.Viper) (ShopProfile, error) {
	profile := DefaultShopProfile()
	if err := v.UnmarshalKey("shop", &profile); err != nil {
		return ShopProfile{}, err
	}
	return profile, nil
}
