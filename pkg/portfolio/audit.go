package portfolio

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Audit action codes.
const (
	AuditActionAdd    = "ADD"
	AuditActionEdit   = "EDIT"
	AuditActionDelete = "DELETE"
)

const emptyTickerPlaceholder = "—"

// AuditField is one key=value token on an audit line. Amount-valued fields
// are rendered with a currency prefix and two decimals, text fields as-is.
// Fields are written in the order the caller supplies them.
type AuditField struct {
	Key    string
	Amount *Amount
	Text   string
}

// AmountField builds a monetary audit field.
func AmountField(key string, value Amount) AuditField {
	return AuditField{Key: key, Amount: &value}
}

// TextField builds a plain-text audit field.
func TextField(key, value string) AuditField {
	return AuditField{Key: key, Text: value}
}

func (f AuditField) render() string {
	if f.Amount != nil {
		return f.Key + "=" + f.Amount.Currency()
	}
	return f.Key + "=" + f.Text
}

// AuditEntry is one parsed line of the audit log.
type AuditEntry struct {
	Timestamp string            `json:"timestamp"`
	Action    string            `json:"action"`
	Ticker    string            `json:"ticker"`
	Name      string            `json:"name"`
	Fields    map[string]string `json:"fields"`
}

// auditLog appends formatted lines to a text file and parses them back.
// Appends are serialized behind a mutex; the file handle stays open for the
// lifetime of the Core.
type auditLog struct {
	path string
	mu   sync.Mutex
	file *os.File
}

func newAuditLog(path string) *auditLog {
	return &auditLog{path: path}
}

// Record appends one line describing a mutating action. Lines are
// append-only: nothing ever edits or removes them.
//
// Example output:
//
//	2026-02-21 14:30:00 | ADD    | AAPL   | Apple Inc. | current_value=$11200.00  cost_basis=$7500.00
func (l *auditLog) Record(action, ticker, name string, fields ...AuditField) error {
	tickerCol := ticker
	if tickerCol == "" {
		tickerCol = emptyTickerPlaceholder
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, f.render())
	}
	line := fmt.Sprintf("%s | %s | %s | %s | %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		padRight(action, 6),
		padRight(tickerCol, 6),
		name,
		strings.Join(tokens, "  "),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		l.file = file
	}
	_, err := l.file.WriteString(line)
	return err
}

// ReadAll parses the log file and returns entries newest first. A missing
// file yields an empty result. Lines that do not split into at least four
// segments are skipped: one unparseable historical line must not break
// display of the rest.
func (l *auditLog) ReadAll() ([]AuditEntry, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []AuditEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	entries := []AuditEntry{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, ok := parseAuditLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Close closes the underlying file, if open.
func (l *auditLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func parseAuditLine(line string) (AuditEntry, bool) {
	parts := strings.SplitN(line, "|", 5)
	if len(parts) < 4 {
		return AuditEntry{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	fields := map[string]string{}
	if len(parts) == 5 {
		for _, token := range strings.Fields(parts[4]) {
			if k, v, found := strings.Cut(token, "="); found {
				fields[k] = v
			}
		}
	}

	return AuditEntry{
		Timestamp: parts[0],
		Action:    parts[1],
		Ticker:    parts[2],
		Name:      parts[3],
		Fields:    fields,
	}, true
}

// padRight pads by rune count so the multibyte ticker placeholder lines up
// the same as ASCII tickers.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// GetAuditEntries returns the parsed audit trail, newest first.
func (c *Core) GetAuditEntries() ([]AuditEntry, error) {
	return c.audit.ReadAll()
}

// recordAudit appends an audit entry after a committed write. The store is
// the source of truth: a failed append is logged and otherwise ignored.
func (c *Core) recordAudit(action, ticker, name string, fields ...AuditField) {
	if err := c.audit.Record(action, ticker, name, fields...); err != nil {
		c.logger.Warn("audit append failed", "action", action, "ticker", ticker, "err", err)
	}
}
