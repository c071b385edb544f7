// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverReplacesUnconsumed(t *testing.T) {
	ch := make(chan int, 1)

	deliver(ch, 1)
	deliver(ch, 2)
	deliver(ch, 3)

	select {
	case got := <-ch:
		assert.Equal(t, 3, got, "stale deliveries are dropped, last wins")
	default:
		t.Fatal("expected a pending delivery")
	}

	select {
	case got := <-ch:
		t.Fatalf("expected a single slot, got extra delivery %d", got)
	default:
	}
}

func TestDeliverAfterConsumption(t *testing.T) {
	ch := make(chan int, 1)
	deliver(ch, 1)
	require.Equal(t, 1, <-ch)
	deliver(ch, 2)
	assert.Equal(t, 2, <-ch)
}
