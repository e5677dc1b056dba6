package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/swemas/internal/log"
)

func TestCtxWithValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		kv        log.Kv
		expValues log.Kv
	}{
		"Empty context should only have the new values.": {
			ctx:       context.Background,
			kv:        log.Kv{"task": 7},
			expValues: log.Kv{"task": 7},
		},

		"Previous values should be kept and overridden by the new ones.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"task": 1, "role": "planner"})
			},
			kv:        log.Kv{"task": 2},
			expValues: log.Kv{"task": 2, "role": "planner"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := log.CtxWithValues(test.ctx(), test.kv)
			assert.Equal(t, test.expValues, log.ValuesFromCtx(ctx))
		})
	}
}

func TestValuesFromCtxWithoutValues(t *testing.T) {
	assert.Equal(t, log.Kv{}, log.ValuesFromCtx(context.Background()))
}
