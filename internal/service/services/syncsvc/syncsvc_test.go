package syncsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/service/models/delivery"
	"github.com/corray333/order-bridge/internal/service/models/order"
	"github.com/corray333/order-bridge/internal/service/models/payload"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[int64]order.Order
	err    error
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	ord, ok := f.orders[id]
	if !ok {
		return nil, nil
	}

	return &ord, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, _ int64, _ order.Status) error {
	return nil
}

type fakeDeliverer struct {
	result   delivery.Result
	payloads []payload.Payload
}

func (f *fakeDeliverer) Deliver(_ context.Context, _ config.Credentials, pl payload.Payload) delivery.Result {
	f.payloads = append(f.payloads, pl)

	return f.result
}

type fakeMailSender struct {
	to      string
	subject string
	body    string
	sent    int
	sendErr error
}

func (f *fakeMailSender) Send(to, subject, body string) error {
	f.to = to
	f.subject = subject
	f.body = body
	f.sent++

	return f.sendErr
}

func newService(t *testing.T, repo *fakeOrderRepo, deliverer *fakeDeliverer, sender *fakeMailSender, creds config.Credentials) *SyncService {
	t.Helper()
	viper.Set("site.name", "Example Store")
	viper.Set("site.url", "https://store.example.com")
	viper.Set("partner.report_email", "ops@store.example.com")

	return MustNewSyncService(
		WithOrderRepository(repo),
		WithDeliverer(deliverer),
		WithMailSender(sender),
		WithCredentials(creds),
	)
}

func TestSyncOrder_SkipsWithoutCredentials(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.Success()}
	repo := &fakeOrderRepo{orders: map[int64]order.Order{5: {ID: 5}}}
	svc := newService(t, repo, deliverer, &fakeMailSender{}, config.Credentials{APIKey: "key"})

	err := svc.SyncOrder(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, deliverer.payloads, "delivery must never be attempted without a complete credential pair")
}

func TestSyncOrder_SkipsUnknownOrder(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.Success()}
	repo := &fakeOrderRepo{orders: map[int64]order.Order{}}
	svc := newService(t, repo, deliverer, &fakeMailSender{}, config.Credentials{APIKey: "k", APIPass: "p"})

	err := svc.SyncOrder(context.Background(), 99)

	require.NoError(t, err)
	assert.Empty(t, deliverer.payloads)
}

func TestSyncOrder_DeliversMappedOrder(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.Success()}
	sender := &fakeMailSender{}
	repo := &fakeOrderRepo{orders: map[int64]order.Order{
		5: {ID: 5, CustomerID: 9, Total: "42.50", Status: order.StatusProcessing},
	}}
	svc := newService(t, repo, deliverer, sender, config.Credentials{APIKey: "k", APIPass: "p"})

	err := svc.SyncOrder(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, deliverer.payloads, 1)
	assert.Equal(t, int64(5), deliverer.payloads[0].PoNum)
	assert.Equal(t, "Example Store", deliverer.payloads[0].StoreName)
	assert.Zero(t, sender.sent, "success must not be reported")
}

func TestSyncOrder_ReportsFailureByMail(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.APIError("dup")}
	sender := &fakeMailSender{}
	repo := &fakeOrderRepo{orders: map[int64]order.Order{
		42: {ID: 42, CustomerID: 7, Total: "42.50"},
	}}
	svc := newService(t, repo, deliverer, sender, config.Credentials{APIKey: "k", APIPass: "p"})

	err := svc.SyncOrder(context.Background(), 42)

	require.NoError(t, err, "delivery failures are absorbed")
	require.Equal(t, 1, sender.sent)
	assert.Equal(t, "ops@store.example.com", sender.to)
	assert.Equal(t, "Alert: API Call Failed", sender.subject)
	assert.Contains(t, sender.body, "dup")
	assert.Contains(t, sender.body, "Order id: 42")
	assert.Contains(t, sender.body, "Customer id: 7")
	assert.Contains(t, sender.body, "Order Total: 42.50")
	assert.Contains(t, sender.body, "https://store.example.com")
}

func TestSyncOrder_MailFailureIsNotEscalated(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.TransportError("connection reset")}
	sender := &fakeMailSender{sendErr: errors.New("smtp down")}
	repo := &fakeOrderRepo{orders: map[int64]order.Order{1: {ID: 1}}}
	svc := newService(t, repo, deliverer, sender, config.Credentials{APIKey: "k", APIPass: "p"})

	err := svc.SyncOrder(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, sender.sent)
}

func TestSyncOrder_RepositoryErrorPropagates(t *testing.T) {
	deliverer := &fakeDeliverer{result: delivery.Success()}
	repo := &fakeOrderRepo{err: errors.New("db down")}
	svc := newService(t, repo, deliverer, &fakeMailSender{}, config.Credentials{APIKey: "k", APIPass: "p"})

	err := svc.SyncOrder(context.Background(), 5)

	require.Error(t, err)
	assert.Empty(t, deliverer.payloads)
}
