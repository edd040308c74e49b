package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS generations (
    generation_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    generation_uuid TEXT UNIQUE NOT NULL,
    source_path     TEXT NOT NULL,
    build_path      TEXT,
    header_path     TEXT,
    macro           TEXT NOT NULL,
    version         TEXT NOT NULL,
    version_source  TEXT NOT NULL,
    commit_sha      TEXT,
    branch          TEXT,
    dirty           INTEGER DEFAULT 0,
    changed         INTEGER DEFAULT 0,
    cli_version     TEXT,
    generated_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_generations_source_time
    ON generations(source_path, generated_at);
CREATE INDEX IF NOT EXISTS idx_generations_time
    ON generations(generated_at DESC);
CREATE INDEX IF NOT EXISTS idx_generations_version
    ON generations(version);
`
