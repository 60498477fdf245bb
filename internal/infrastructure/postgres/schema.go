package postgres

import (
	"context"
	"fmt"
)

// schema tablas del servidor de desarrollo. Idempotente.
const schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id            BIGSERIAL PRIMARY KEY,
	username      VARCHAR(150) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS produtos (
	id                 BIGSERIAL PRIMARY KEY,
	nome               VARCHAR(200) NOT NULL UNIQUE,
	descricao          TEXT NOT NULL DEFAULT '',
	preco              NUMERIC(10,2) NOT NULL,
	quantidade_estoque INTEGER NOT NULL DEFAULT 0,
	estoque_min        INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS movimentacoes (
	id                BIGSERIAL PRIMARY KEY,
	produto_id        BIGINT NOT NULL REFERENCES produtos(id) ON DELETE CASCADE,
	usuario_id        BIGINT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	tipo              VARCHAR(10) NOT NULL CHECK (tipo IN ('entrada', 'saida')),
	quantidade        INTEGER NOT NULL CHECK (quantidade >= 0),
	data_movimentacao TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS movimentacoes_data_idx ON movimentacoes (data_movimentacao DESC);
CREATE INDEX IF NOT EXISTS movimentacoes_produto_idx ON movimentacoes (produto_id);
CREATE TABLE IF NOT EXISTS tokens_revogados (
	jti       TEXT PRIMARY KEY,
	expira_em TIMESTAMPTZ NOT NULL
);`

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
