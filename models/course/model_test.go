package course

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// bulk rows are spaced a microsecond apart, so the timestamp columns must
// keep microseconds on every dialect
func TestTimestampsKeepMicroseconds(t *testing.T) {
	for _, model := range []interface{}{&Course{}, &Module{}, &Lesson{}} {
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		for _, name := range []string{"CreatedAt", "UpdatedAt"} {
			field := s.LookUpField(name)
			require.NotNil(t, field, "%s.%s", s.Name, name)
			assert.Equal(t, 6, field.Precision, "%s.%s", s.Name, name)
		}
	}
}

func TestOrderColumn(t *testing.T) {
	for _, model := range []interface{}{&Module{}, &Lesson{}} {
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		assert.Equal(t, "order_index", s.LookUpField("Order").DBName)
	}
}
