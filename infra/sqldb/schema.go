package sqldb

// AUTOINCREMENT keeps ids from being reused after deletes.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS inventory (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	item_name  VARCHAR(100) NOT NULL,
	quantity   INTEGER NOT NULL,
	date_added DATE NOT NULL,
	price      REAL NOT NULL,
	condition  VARCHAR(100) NOT NULL
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS inventory (
	id         BIGSERIAL PRIMARY KEY,
	item_name  VARCHAR(100) NOT NULL,
	quantity   INTEGER NOT NULL,
	date_added DATE NOT NULL,
	price      DOUBLE PRECISION NOT NULL,
	condition  VARCHAR(100) NOT NULL
)`
