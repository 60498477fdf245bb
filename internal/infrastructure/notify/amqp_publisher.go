package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// LowStockMessage cuerpo JSON publicado en la cola de alertas.
type LowStockMessage struct {
	ID         uuid.UUID `json:"id"`
	ProdutoID  int64     `json:"produto_id"`
	Produto    string    `json:"produto"`
	EstoqueMin int       `json:"estoque_min"`
	Projetado  *int      `json:"estoque_projetado,omitempty"`
	Origem     string    `json:"origem"`
	Mensagem   string    `json:"mensagem"`
	Usuario    string    `json:"usuario,omitempty"`
	GeradoEm   time.Time `json:"gerado_em"`
}

// Channel subconjunto de *amqp.Channel que usa el publicador.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publica los avisos en una cola durable de RabbitMQ (exchange por defecto).
type AMQPPublisher struct {
	ch       Channel
	queue    string
	username string
	now      func() time.Time
}

// NewAMQPPublisher declara la cola y devuelve el publicador. username se adjunta a cada
// mensaje para saber quién registró la movimentação.
func NewAMQPPublisher(ch Channel, queue, username string) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("notify: declarar cola %s: %w", queue, err)
	}
	return &AMQPPublisher{ch: ch, queue: queue, username: username, now: time.Now}, nil
}

func (p *AMQPPublisher) NotifyLowStock(ctx context.Context, adv entity.LowStockAdvisory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := LowStockMessage{
		ID:         uuid.New(),
		ProdutoID:  adv.ProductID,
		Produto:    adv.ProductName,
		EstoqueMin: adv.EstoqueMin,
		Origem:     adv.Source,
		Mensagem:   adv.Message,
		Usuario:    p.username,
		GeradoEm:   p.now().UTC(),
	}
	if adv.Source == entity.AdvisorySourceSnapshot {
		projected := adv.Projected
		msg.Projetado = &projected
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: serializar aviso: %w", err)
	}
	err = p.ch.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Timestamp:    msg.GeradoEm,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("notify: publicar en %s: %w", p.queue, err)
	}
	return nil
}

// DialAMQP abre conexión y canal. closeFn cierra ambos.
func DialAMQP(url string) (*amqp.Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("notify: conectar a rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("notify: abrir canal: %w", err)
	}
	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return ch, closeFn, nil
}
