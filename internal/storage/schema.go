package storage

const schema = `
-- The 'card' table stores the two sides of each flashcard.
CREATE TABLE IF NOT EXISTS card (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    hash TEXT UNIQUE -- set only for imported cards
);

CREATE TABLE IF NOT EXISTS deck (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

-- 'deck_card' is the many-to-many association between decks and cards.
CREATE TABLE IF NOT EXISTS deck_card (
    deck_id INTEGER NOT NULL,
    card_id INTEGER NOT NULL,

    PRIMARY KEY (deck_id, card_id),
    FOREIGN KEY(deck_id) REFERENCES deck(id) ON DELETE CASCADE,
    FOREIGN KEY(card_id) REFERENCES card(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at DATETIME NOT NULL
);

-- 'answer' is append-only review history. It deliberately carries no foreign
-- keys on card/deck so that history outlives deleted cards.
CREATE TABLE IF NOT EXISTS answer (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    card_id INTEGER NOT NULL,
    deck_id INTEGER NOT NULL,
    submitted_answer TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    time DATETIME NOT NULL,

    FOREIGN KEY(session_id) REFERENCES session(id)
);

CREATE INDEX IF NOT EXISTS answer_deck_idx ON answer(deck_id);

-- 'schedule' stores the FSRS state of each reviewed card.
CREATE TABLE IF NOT EXISTS schedule (
    card_id INTEGER PRIMARY KEY,
    stability REAL NOT NULL,
    difficulty REAL NOT NULL,
    due_date DATETIME NOT NULL,
    last_review DATETIME NOT NULL,

    FOREIGN KEY(card_id) REFERENCES card(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS account (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);
`
