package redis

import (
	"testing"

	"github.com/glow24organics/storefront-backend/pkg/config"
)

func configFor(url, addr string) config.RedisConfig {
	return config.RedisConfig{URL: url, Address: addr}
}

func TestCheckoutKeyNamespacing(t *testing.T) {
	c := &Client{}

	got := c.CheckoutKey("sess-1", "cartItems")
	want := "g24:checkout:sess-1:cartItems"
	if got != want {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestBuildKeySkipsEmptyParts(t *testing.T) {
	c := &Client{}

	got := c.CheckoutKey("", "checkoutFormData")
	want := "g24:checkout:checkoutFormData"
	if got != want {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(configFor("", "")); err == nil {
		t.Fatal("expected error when no url or address provided")
	}
	if _, err := optionsFromConfig(configFor("", "localhost:6379")); err != nil {
		t.Fatalf("address-only config should be accepted: %v", err)
	}
}
