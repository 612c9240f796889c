package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_SetAndGet(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	c.Set("progress:abc", 42, UserTag(uuid.New()))
	c.Wait()

	got, ok := c.Get("progress:abc")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestReportCache_InvalidateByTag(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	user := uuid.New()
	budget := uuid.New()

	c.Set("progress:a", "a", UserTag(user), BudgetTag(budget))
	c.Set("progress:b", "b", UserTag(user))
	c.Set("progress:c", "c", BudgetTag(uuid.New()))
	c.Wait()

	c.Invalidate(UserTag(user))
	c.Wait()

	_, ok := c.Get("progress:a")
	assert.False(t, ok, "entry tagged with the invalidated user must be gone")
	_, ok = c.Get("progress:b")
	assert.False(t, ok)
	_, ok = c.Get("progress:c")
	assert.True(t, ok, "entries for other tags survive")
}

func TestReportCache_InvalidateUnknownTagIsNoop(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	c.Set("progress:a", "a", BudgetTag(uuid.New()))
	c.Wait()

	c.Invalidate(UserTag(uuid.New()))
	c.Wait()

	_, ok := c.Get("progress:a")
	assert.True(t, ok)
}

func TestTagConstructors(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "user:"+id.String(), UserTag(id))
	assert.Equal(t, "budget:"+id.String(), BudgetTag(id))
	assert.Equal(t, "period:"+id.String(), PeriodTag(id))
	assert.Equal(t, "account:"+id.String(), AccountTag(id))
	assert.Equal(t, "category:groceries", CategoryTag("groceries"))
}
