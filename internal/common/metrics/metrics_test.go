package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLayoutLabel(t *testing.T) {
	assert.Equal(t, "none", LayoutLabel(""))
	assert.Equal(t, "collected_data", LayoutLabel("collected_data"))
}

func TestExtractionLayout_Counts(t *testing.T) {
	c := ExtractionLayout.WithLabelValues("metrics_test_layout")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
