package picker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/testutil"
)

type blockingSaver struct {
	release chan struct{}
}

func (b *blockingSaver) SaveCustomer(ctx context.Context, in api.SaveCustomerRequest) (domain.Customer, error) {
	<-b.release
	return domain.Customer{ID: 1, Name: in.Name, Code: in.Code}, nil
}

type failingSaver struct{}

func (failingSaver) SaveCustomer(context.Context, api.SaveCustomerRequest) (domain.Customer, error) {
	return domain.Customer{}, errors.New("boom")
}

func TestClientForm_RequiresNameAndCode(t *testing.T) {
	f := &ClientForm{Name: "Acme"}
	assert.False(t, f.Valid())
	assert.Contains(t, f.Errors(), "code")

	_, err := f.Submit(context.Background(), failingSaver{})
	assert.ErrorIs(t, err, ErrInvalid)

	f.Code = "ACM"
	assert.True(t, f.Valid(), "address is optional")
}

func TestClientForm_SubmitAgainstAPI(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	client := api.NewClient(fake.URL(), 2*time.Second, api.WithTokenSource(api.StaticToken(fake.Token)))
	f := &ClientForm{Name: " Initech ", Code: "INI", Address: "Hanoi"}

	created, err := f.Submit(context.Background(), client)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Initech", created.Name)
	assert.Empty(t, f.Name, "form is cleared after save")

	rec, ok := fake.LastRequest(testutil.PathSaveCustomer)
	require.True(t, ok)
	var body map[string]any
	rec.DecodeBody(t, &body)
	assert.Equal(t, "Hanoi", body["address"])
}

func TestClientForm_FailureKeepsFields(t *testing.T) {
	f := &ClientForm{Name: "Acme", Code: "ACM"}
	_, err := f.Submit(context.Background(), failingSaver{})
	require.Error(t, err)
	assert.Equal(t, "Acme", f.Name)
	assert.False(t, f.Busy())
}

func TestClientForm_BusyRejectsSecondSubmit(t *testing.T) {
	saver := &blockingSaver{release: make(chan struct{})}
	f := &ClientForm{Name: "Acme", Code: "ACM"}

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), saver)
		done <- err
	}()
	require.Eventually(t, f.Busy, time.Second, 5*time.Millisecond)

	_, err := f.Submit(context.Background(), saver)
	assert.ErrorIs(t, err, ErrBusy)

	close(saver.release)
	assert.NoError(t, <-done)
}

func TestMerge(t *testing.T) {
	a := testutil.NewTestCustomer("Acme", "ACM")
	b := testutil.NewTestCustomer("Globex", "GLX")
	list := []domain.Customer{a, b}

	added := Merge(list, domain.Customer{ID: 999, Name: "New", Code: "NEW"})
	assert.Len(t, added, 3)
	assert.Equal(t, int64(999), added[2].ID)

	renamed := a
	renamed.Name = "Acme Corp"
	replaced := Merge(list, renamed)
	assert.Len(t, replaced, 2)
	assert.Equal(t, "Acme Corp", replaced[0].Name)
	assert.Equal(t, "Acme", list[0].Name, "input is not modified")
}
