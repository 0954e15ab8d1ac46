package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItineraryTypeFromTag(t *testing.T) {
	assert.Equal(t, ItineraryFlight, ItineraryTypeFromTag("FLIGHT"))
	assert.Equal(t, ItineraryHotel, ItineraryTypeFromTag("hotel"))
	assert.Equal(t, ItineraryActivity, ItineraryTypeFromTag(" Activity "))
	assert.Equal(t, ItineraryOther, ItineraryTypeFromTag("CRUISE"))
	assert.Equal(t, ItineraryOther, ItineraryTypeFromTag(""))
}
