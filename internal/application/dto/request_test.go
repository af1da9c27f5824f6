package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchRequest_ApplyDefaults(t *testing.T) {
	b := &BatchRequest{
		APIVersion: "1.0.0",
		Defaults:   &ChartDefaults{Year: "甲子", Month: "丙寅", Day: "戊辰", Term: "立春"},
		Charts: []ChartRequest{
			{Hour: "壬子"},
			{Year: "乙丑", Hour: "癸丑", Term: "雨水"},
		},
	}

	b.ApplyDefaults()

	assert.Equal(t, ChartRequest{Year: "甲子", Month: "丙寅", Day: "戊辰", Hour: "壬子", Term: "立春"}, b.Charts[0])
	assert.Equal(t, ChartRequest{Year: "乙丑", Month: "丙寅", Day: "戊辰", Hour: "癸丑", Term: "雨水"}, b.Charts[1])
}

func TestBatchRequest_ApplyDefaults_NoDefaults(t *testing.T) {
	b := &BatchRequest{Charts: []ChartRequest{{Hour: "壬子"}}}

	b.ApplyDefaults()

	assert.Equal(t, ChartRequest{Hour: "壬子"}, b.Charts[0])
}
