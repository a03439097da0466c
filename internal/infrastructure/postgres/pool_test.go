package postgres_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
)

func TestPoolMaxConns(t *testing.T) {
	assert.Equal(t, int32(25), postgres.PoolMaxConns(25))
	assert.Equal(t, int32(1), postgres.PoolMaxConns(0))
	assert.Equal(t, int32(1), postgres.PoolMaxConns(-3))
	assert.Equal(t, int32(math.MaxInt32), postgres.PoolMaxConns(math.MaxInt32+1))
}
