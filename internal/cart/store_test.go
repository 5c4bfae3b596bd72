package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mu       sync.Mutex
	cart     domain.Cart
	fetchErr error
	setErr   error
	delErr   error

	setCalls []int  // quantities sent, in order
	delCalls int

	// setFn, when non-nil, replaces the default SetQuantity behavior.
	setFn func(foodID string, quantity int) error
}

func (m *mockBackend) FetchCart(context.Context, string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.cart, nil
}

func (m *mockBackend) SetQuantity(_ context.Context, _, foodID string, quantity int) error {
	m.mu.Lock()
	m.setCalls = append(m.setCalls, quantity)
	fn := m.setFn
	err := m.setErr
	m.mu.Unlock()
	if fn != nil {
		return fn(foodID, quantity)
	}
	return err
}

func (m *mockBackend) DeleteCartLine(context.Context, string, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delCalls++
	return m.delErr
}

func (m *mockBackend) sentQuantities() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.setCalls))
	copy(out, m.setCalls)
	return out
}

type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

func TestAddThenRemove_RestoresAbsence(t *testing.T) {
	sut := NewStore(&mockBackend{}, &recorder{}, CompensateAll)
	ctx := context.Background()

	sut.Add(ctx, "samosa", "")
	assert.Equal(t, 1, sut.Quantity("samosa"))

	sut.Remove(ctx, "samosa")
	_, ok := sut.Entry("samosa")
	assert.False(t, ok, "entry must be removed, never stored as 0")
	assert.Equal(t, 0, sut.Quantity("samosa"))
}

func TestAdd_NotesMergeRules(t *testing.T) {
	sut := NewStore(&mockBackend{}, &recorder{}, CompensateAll)
	ctx := context.Background()

	sut.Add(ctx, "dosa", "x")
	assert.Equal(t, "x", sut.Notes("dosa"))

	// no notes supplied: previous notes preserved
	sut.Add(ctx, "dosa", "")
	assert.Equal(t, 2, sut.Quantity("dosa"))
	assert.Equal(t, "x", sut.Notes("dosa"))

	// explicit non-empty notes override
	sut.Add(ctx, "dosa", "extra chutney")
	assert.Equal(t, "extra chutney", sut.Notes("dosa"))
}

func TestRemove_PreservesNotesAndShape(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{
		"legacy":   domain.NewLegacyCartEntry(2),
		"detailed": domain.NewCartEntry(3, "no onions"),
	}}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	ctx := context.Background()
	sut.Load(ctx, "tok")

	sut.Remove(ctx, "legacy")
	entry, ok := sut.Entry("legacy")
	require.True(t, ok)
	assert.Equal(t, 1, entry.Quantity())
	assert.True(t, entry.IsLegacy())

	sut.Remove(ctx, "detailed")
	assert.Equal(t, 2, sut.Quantity("detailed"))
	assert.Equal(t, "no onions", sut.Notes("detailed"))
}

func TestRemove_AbsentItemIsNoop(t *testing.T) {
	backend := &mockBackend{}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	sut.SetToken("tok")

	sut.Remove(context.Background(), "ghost")
	sut.Wait()

	assert.Empty(t, backend.sentQuantities(), "no backend call for an absent item")
}

func TestAdd_WithToken_SendsNewQuantity(t *testing.T) {
	backend := &mockBackend{}
	notes := &recorder{}
	sut := NewStore(backend, notes, CompensateAll)
	sut.SetToken("tok")
	ctx := context.Background()

	sut.Add(ctx, "samosa", "")
	sut.Wait()
	sut.Add(ctx, "samosa", "")
	sut.Wait()

	assert.Equal(t, []int{1, 2}, backend.sentQuantities())
	assert.Equal(t, 2, sut.Quantity("samosa"))
	assert.Len(t, notes.successes, 2)
}

func TestAdd_BackendFailure_RollsBackSingleIncrement(t *testing.T) {
	backend := &mockBackend{}
	notes := &recorder{}
	sut := NewStore(backend, notes, CompensateAll)
	ctx := context.Background()

	sut.Add(ctx, "samosa", "keep these notes")
	sut.SetToken("tok")
	backend.setErr = fmt.Errorf("network down")

	sut.Add(ctx, "samosa", "")
	sut.Wait()

	// only the failed increment is undone, not the whole entry
	assert.Equal(t, 1, sut.Quantity("samosa"))
	assert.Equal(t, "keep these notes", sut.Notes("samosa"))
	assert.Equal(t, "Failed to add item to cart", notes.lastError())
}

func TestAdd_BackendFailure_FirstIncrementRemovesEntry(t *testing.T) {
	backend := &mockBackend{setErr: fmt.Errorf("boom")}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	sut.SetToken("tok")

	sut.Add(context.Background(), "samosa", "")
	sut.Wait()

	_, ok := sut.Entry("samosa")
	assert.False(t, ok)
}

func TestRemove_BackendFailure_CompensateAll(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"dosa": domain.NewCartEntry(2, "spicy")}}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	ctx := context.Background()
	sut.Load(ctx, "tok")
	backend.setErr = fmt.Errorf("boom")

	sut.Remove(ctx, "dosa")
	sut.Wait()

	assert.Equal(t, 2, sut.Quantity("dosa"))
	assert.Equal(t, "spicy", sut.Notes("dosa"))
}

func TestRemove_BackendFailure_ReinstatesDeletedEntry(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"dosa": domain.NewCartEntry(1, "spicy")}}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	ctx := context.Background()
	sut.Load(ctx, "tok")
	backend.setErr = fmt.Errorf("boom")

	sut.Remove(ctx, "dosa")
	sut.Wait()

	entry, ok := sut.Entry("dosa")
	require.True(t, ok)
	assert.Equal(t, 1, entry.Quantity())
	assert.Equal(t, "spicy", entry.Notes())
}

func TestRemove_BackendFailure_CompensateAddsDrifts(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"dosa": domain.NewCartEntry(2, "")}}
	sut := NewStore(backend, &recorder{}, CompensateAdds)
	ctx := context.Background()
	sut.Load(ctx, "tok")
	backend.setErr = fmt.Errorf("boom")

	sut.Remove(ctx, "dosa")
	sut.Wait()

	// historical behavior: the decrement is kept despite the failure
	assert.Equal(t, 1, sut.Quantity("dosa"))
}

func TestRemoveCompletely_RequiresToken(t *testing.T) {
	backend := &mockBackend{}
	notes := &recorder{}
	sut := NewStore(backend, notes, CompensateAll)

	sut.RemoveCompletely(context.Background(), "dosa")
	sut.Wait()

	assert.Equal(t, "Please login first", notes.lastError())
	assert.Equal(t, 0, backend.delCalls)
}

func TestRemoveCompletely_DeletesLocallyOnlyOnSuccess(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"dosa": domain.NewCartEntry(3, "")}}
	notes := &recorder{}
	sut := NewStore(backend, notes, CompensateAll)
	ctx := context.Background()
	sut.Load(ctx, "tok")

	backend.delErr = fmt.Errorf("boom")
	sut.RemoveCompletely(ctx, "dosa")
	sut.Wait()
	assert.Equal(t, 3, sut.Quantity("dosa"), "no local change on failure")

	backend.mu.Lock()
	backend.delErr = nil
	backend.mu.Unlock()
	sut.RemoveCompletely(ctx, "dosa")
	sut.Wait()
	_, ok := sut.Entry("dosa")
	assert.False(t, ok)
}

func TestLoad_ReplacesStateWholesale(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"a": domain.NewLegacyCartEntry(2)}}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	ctx := context.Background()

	sut.Add(ctx, "stale-local", "")
	sut.Load(ctx, "tok")

	assert.Equal(t, 2, sut.Quantity("a"))
	assert.Equal(t, 0, sut.Quantity("stale-local"))
}

func TestLoad_FailureResetsToEmpty(t *testing.T) {
	backend := &mockBackend{cart: domain.Cart{"a": domain.NewLegacyCartEntry(2)}}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	ctx := context.Background()
	sut.Load(ctx, "tok")
	require.Equal(t, 2, sut.Quantity("a"))

	backend.mu.Lock()
	backend.fetchErr = fmt.Errorf("boom")
	backend.mu.Unlock()
	sut.Load(ctx, "tok")

	assert.Empty(t, sut.Items(), "fail-safe-empty, not fail-preserve")
}

func TestAdd_StaleFailureDoesNotOverwriteNewerState(t *testing.T) {
	release := make(chan struct{})
	backend := &mockBackend{}
	backend.setFn = func(_ string, quantity int) error {
		if quantity == 1 {
			<-release // first request settles last
			return fmt.Errorf("boom")
		}
		return nil
	}
	sut := NewStore(backend, &recorder{}, CompensateAll)
	sut.SetToken("tok")
	ctx := context.Background()

	sut.Add(ctx, "samosa", "") // in-flight, will fail late
	sut.Add(ctx, "samosa", "") // supersedes, succeeds
	close(release)
	sut.Wait()

	// the late failure's rollback must not touch the superseding state
	assert.Equal(t, 2, sut.Quantity("samosa"))
}
