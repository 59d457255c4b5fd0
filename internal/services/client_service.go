package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/invoicehero/internal/models"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrListClientsFailed  = errors.New("list clients failed")
	ErrLoadClientFailed   = errors.New("load client failed")
	ErrCreateClientFailed = errors.New("create client failed")
	ErrDeleteClientFailed = errors.New("delete client failed")
)

type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (input *ClientInput) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Name    models.Text `json:"name"`
		Email   models.Text `json:"email"`
		Address models.Text `json:"address"`
		Phone   models.Text `json:"phone"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*input = ClientInput{
		Name:    decoded.Name.String(),
		Email:   decoded.Email.String(),
		Address: decoded.Address.String(),
		Phone:   decoded.Phone.String(),
	}
	return nil
}

type ClientService struct {
	clients ClientRepository
	now     func() time.Time
}

func NewClientService(clients ClientRepository) *ClientService {
	return &ClientService{clients: clients, now: time.Now}
}

func (service *ClientService) List(ctx context.Context, userID string) (clients []models.Client, err error) {
	ctx, span := startSpan(ctx, "ClientService.List", userID)
	defer func() { finishSpan(span, err) }()

	clients, err = service.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListClientsFailed, err)
	}
	return clients, nil
}

func (service *ClientService) Get(ctx context.Context, userID string, clientID string) (client models.Client, err error) {
	ctx, span := startSpan(ctx, "ClientService.Get", userID)
	defer func() { finishSpan(span, err) }()

	client, err = service.clients.FindByIDForUser(ctx, clientID, userID)
	if err != nil {
		return models.Client{}, clientError(ErrLoadClientFailed, err)
	}
	return client, nil
}

func (service *ClientService) Create(ctx context.Context, userID string, input ClientInput) (client models.Client, err error) {
	ctx, span := startSpan(ctx, "ClientService.Create", userID)
	defer func() { finishSpan(span, err) }()

	client = models.Client{
		ID:        newRecordID(clientIDPrefix),
		UserID:    userID,
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		Phone:     input.Phone,
		CreatedAt: service.now().UTC(),
	}
	if err := service.clients.Create(ctx, &client); err != nil {
		return models.Client{}, fmt.Errorf("%w: %v", ErrCreateClientFailed, err)
	}
	return client, nil
}

// Delete removes the client only. Invoices keep their reference and resolve
// it to Unknown.
func (service *ClientService) Delete(ctx context.Context, userID string, clientID string) (err error) {
	ctx, span := startSpan(ctx, "ClientService.Delete", userID)
	defer func() { finishSpan(span, err) }()

	if err := service.clients.DeleteForUser(ctx, clientID, userID); err != nil {
		return clientError(ErrDeleteClientFailed, err)
	}
	return nil
}

func clientError(failure error, err error) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrClientNotFound, err)
	}
	return fmt.Errorf("%w: %v", failure, err)
}
