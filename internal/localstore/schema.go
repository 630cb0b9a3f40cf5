package localstore

// Table names one of the local tables. Only these can be read or written.
type Table string

const (
	TableTransactions Table = "transactions"
	TableCategories   Table = "categories"
	TableInvestments  Table = "investments"
	TableGoals        Table = "goals"
	TableProfiles     Table = "profiles"
)

// Dates and amounts are TEXT so the driver hands them back untouched and
// decimals keep their exact value.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      TEXT NOT NULL,
	account_id   TEXT NOT NULL DEFAULT 'acc1',
	description  TEXT NOT NULL DEFAULT '',
	amount       TEXT NOT NULL DEFAULT '0',
	type         TEXT NOT NULL CHECK (type IN ('income', 'expense')),
	category     TEXT,
	status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed')),
	paid_amount  TEXT NOT NULL DEFAULT '0',
	is_recurring INTEGER NOT NULL DEFAULT 0 CHECK (is_recurring IN (0, 1)),
	date         TEXT NOT NULL,
	created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	type       TEXT NOT NULL CHECK (type IN ('income', 'expense')),
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS investments (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id       TEXT NOT NULL,
	name          TEXT NOT NULL,
	type          TEXT,
	amount        TEXT NOT NULL DEFAULT '0',
	current_value TEXT NOT NULL DEFAULT '0',
	date          TEXT,
	created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS goals (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id        TEXT NOT NULL,
	name           TEXT NOT NULL,
	target_amount  TEXT NOT NULL DEFAULT '0',
	current_amount TEXT NOT NULL DEFAULT '0',
	deadline       TEXT,
	created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS profiles (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL UNIQUE,
	name       TEXT,
	email      TEXT,
	currency   TEXT NOT NULL DEFAULT 'BRL',
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// columns lists the writable columns of each table.
var columns = map[Table]map[string]struct{}{
	TableTransactions: set("user_id", "account_id", "description", "amount", "type", "category", "status",
		"paid_amount", "is_recurring", "date", "created_at"),
	TableCategories:  set("user_id", "name", "type", "created_at"),
	TableInvestments: set("user_id", "name", "type", "amount", "current_value", "date", "created_at"),
	TableGoals:       set("user_id", "name", "target_amount", "current_amount", "deadline", "created_at"),
	TableProfiles:    set("user_id", "name", "email", "currency", "created_at"),
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}

	return m
}
