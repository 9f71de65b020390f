package store

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS clients (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categories (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	parent_id BIGINT REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS nomenclature (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
	category_id BIGINT NOT NULL REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT NOT NULL REFERENCES clients(id),
	order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	total_price NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS order_items (
	id BIGSERIAL PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id),
	item_id BIGINT NOT NULL REFERENCES nomenclature(id),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	UNIQUE (order_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders(client_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_item_id ON order_items(item_id);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	parent_id INTEGER REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS nomenclature (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	price REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
	category_id INTEGER NOT NULL REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL REFERENCES clients(id),
	order_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	total_price REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL REFERENCES orders(id),
	item_id INTEGER NOT NULL REFERENCES nomenclature(id),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	UNIQUE (order_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders(client_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_item_id ON order_items(item_id);
`
