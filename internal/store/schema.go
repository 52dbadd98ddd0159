package store

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id                  TEXT PRIMARY KEY,
    path                TEXT NOT NULL,
    page_count          INTEGER NOT NULL,
    tier                TEXT NOT NULL DEFAULT '',
    confidence          REAL NOT NULL DEFAULT 0,
    structure_available INTEGER NOT NULL DEFAULT 0,
    created_at          TEXT NOT NULL,
    updated_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS toc_entries (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    number      TEXT NOT NULL,
    title       TEXT NOT NULL,
    page_state  TEXT NOT NULL,
    page        INTEGER,
    page_lo     INTEGER,
    page_hi     INTEGER,
    category    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_toc_entries_document
    ON toc_entries(document_id, position);

CREATE TABLE IF NOT EXISTS chunks (
    id                    INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id           TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    source_page           INTEGER NOT NULL,
    text                  TEXT NOT NULL,
    section_number        TEXT NOT NULL DEFAULT '',
    section_title         TEXT NOT NULL DEFAULT '',
    section_category      TEXT NOT NULL DEFAULT '',
    is_split              INTEGER NOT NULL DEFAULT 0,
    sub_index             INTEGER NOT NULL DEFAULT 0,
    structure_unavailable INTEGER NOT NULL DEFAULT 0,
    section_titles        TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_chunks_document
    ON chunks(document_id, source_page);
`
