package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClearRiskLevelDropsSeries(t *testing.T) {
	baseline := testutil.CollectAndCount(riskLevelGauge)

	RecordRiskLevel("ghost", 2)
	assert.Equal(t, baseline+1, testutil.CollectAndCount(riskLevelGauge))

	ClearRiskLevel("ghost")
	assert.Equal(t, baseline, testutil.CollectAndCount(riskLevelGauge))
}

func TestClearRiskLevelUnknownIdentityIsNoOp(t *testing.T) {
	baseline := testutil.CollectAndCount(riskLevelGauge)
	ClearRiskLevel("never-seen")
	assert.Equal(t, baseline, testutil.CollectAndCount(riskLevelGauge))
}
