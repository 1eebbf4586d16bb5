// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookup_DisabledWithoutPath(t *testing.T) {
	g, err := NewLookup("")
	require.NoError(t, err)
	assert.False(t, g.IsEnabled())
	assert.NoError(t, g.Close())
}

func TestNewLookup_MissingDatabase(t *testing.T) {
	g, err := NewLookup("/nonexistent/GeoLite2-Country.mmdb")
	require.Error(t, err)
	// The lookup is still usable, just disabled.
	require.NotNil(t, g)
	assert.False(t, g.IsEnabled())
	assert.Equal(t, "", g.LookupCountry("8.8.8.8"))
}

func TestLookupCountry_Disabled(t *testing.T) {
	g, err := NewLookup("")
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, "", g.LookupCountry("8.8.8.8"))
	assert.Equal(t, "", g.LookupCountry("not-an-ip"))
}

func TestLookupCountry_LocalAddresses(t *testing.T) {
	g, err := NewLookup("")
	require.NoError(t, err)
	defer g.Close()

	for _, ip := range []string{"127.0.0.1", "::1", "10.1.2.3", "172.16.0.1", "192.168.1.1", "fe80::1"} {
		assert.Equal(t, "LOCAL", g.LookupCountry(ip), "ip %s", ip)
	}
}

func TestReload_DisabledIsNoop(t *testing.T) {
	g, err := NewLookup("")
	require.NoError(t, err)
	defer g.Close()

	assert.NoError(t, g.Reload())
}
