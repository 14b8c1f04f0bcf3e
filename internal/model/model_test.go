package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestTagSet_LowercaseDedupKeepsOrder(t *testing.T) {
	s := NewTagSet()
	s.AddAll([]string{"Art", "vintage", " ART ", "", "Retro", "vintage"})

	assert.Equal(t, []string{"art", "vintage", "retro"}, s.Slice())
	assert.Equal(t, "art, vintage, retro", s.String())
	assert.Equal(t, 3, s.Len())
}

func TestHasTag_ElementNotSubstring(t *testing.T) {
	tests := []struct {
		raw  string
		tag  string
		want bool
	}{
		{"art, vintage", "art", true},
		{"artisan", "art", false},
		{"vintage-art", "art", false},
		{"Art,Retro", " ART ", true},
		{"", "art", false},
		{"art", "", false},
	}

	for _, tt := range tests {
		if got := HasTag(tt.raw, tt.tag); got != tt.want {
			t.Errorf("HasTag(%q, %q) = %v, want %v", tt.raw, tt.tag, got, tt.want)
		}
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "Summer, Tee, Vintage-Art", JoinTags(" Summer,Tee ,, Vintage-Art"))
	assert.Equal(t, "", JoinTags(""))
}

func TestNewLineItem_Revenue(t *testing.T) {
	item := NewLineItem("Tee", nil,
		decimal.RequireFromString("25.00"),
		decimal.RequireFromString("8.50"),
		decimal.RequireFromString("5.00"), nil)

	assert.True(t, item.Revenue.Equal(decimal.RequireFromString("11.50")), "revenue = %s", item.Revenue)
}

func TestOrderItems_RoundTripAndMalformed(t *testing.T) {
	o := &Order{}
	err := o.SetLineItems([]LineItem{NewLineItem("Mug", nil, decimal.NewFromInt(10), decimal.Zero, decimal.Zero, nil)})
	assert.NoError(t, err)

	items := o.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "Mug", items[0].Title)
		assert.True(t, items[0].Revenue.Equal(decimal.NewFromInt(10)))
	}

	o.LineItems = datatypes.JSON(`{not json`)
	assert.Empty(t, o.Items())
	assert.NotNil(t, o.Items())

	o.LineItems = nil
	assert.NotNil(t, o.Items())
}
