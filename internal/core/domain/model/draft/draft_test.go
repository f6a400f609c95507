package draft_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/draft"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var draftNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNewDraft(t *testing.T) {
	t.Run("creates an unconverted draft", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{Phone: "01712345678"}, `[{"p":"x"}]`, draftNow)
		require.NoError(t, err)

		assert.False(t, d.IsConverted())
		assert.Nil(t, d.OrderID())
		assert.Equal(t, "sess-1", d.SessionID())
	})

	t.Run("requires a session ID", func(t *testing.T) {
		_, err := draft.NewDraft("", draft.Fields{}, "", draftNow)
		require.Error(t, err)
	})
}

func TestDraftApply(t *testing.T) {
	t.Run("overwrites fields and bumps the timestamp", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{Name: "R"}, "[]", draftNow)
		require.NoError(t, err)

		later := draftNow.Add(time.Minute)
		d.Apply(draft.Fields{Name: "Rahim", Address: "12 Lake Road"}, `[{"p":"x"}]`, later)

		assert.Equal(t, "Rahim", d.Fields().Name)
		assert.Equal(t, later, d.LastUpdatedAt())
	})

	t.Run("converted draft is frozen", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{Name: "Rahim"}, "[]", draftNow)
		require.NoError(t, err)
		require.NoError(t, d.Convert(kernel.NewUUID(), draftNow))

		d.Apply(draft.Fields{Name: "Someone Else"}, "[]", draftNow.Add(time.Hour))
		assert.Equal(t, "Rahim", d.Fields().Name)
	})
}

func TestDraftConvert(t *testing.T) {
	t.Run("links the order exactly once", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{}, "[]", draftNow)
		require.NoError(t, err)

		orderID := kernel.NewUUID()
		require.NoError(t, d.Convert(orderID, draftNow))

		assert.True(t, d.IsConverted())
		require.NotNil(t, d.OrderID())
		assert.True(t, orderID.IsEqual(*d.OrderID()))
	})

	t.Run("second conversion is a no-op", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{}, "[]", draftNow)
		require.NoError(t, err)

		first := kernel.NewUUID()
		require.NoError(t, d.Convert(first, draftNow))
		require.NoError(t, d.Convert(kernel.NewUUID(), draftNow))

		assert.True(t, first.IsEqual(*d.OrderID()))
	})

	t.Run("rejects an invalid order ID", func(t *testing.T) {
		d, err := draft.NewDraft("sess-1", draft.Fields{}, "[]", draftNow)
		require.NoError(t, err)

		var zero kernel.UUID
		require.Error(t, d.Convert(zero, draftNow))
		assert.False(t, d.IsConverted())
	})
}

func TestDraftValidate(t *testing.T) {
	var d draft.Draft
	require.ErrorIs(t, d.Validate(), draft.ErrDraftIsNotConstructed)
}
