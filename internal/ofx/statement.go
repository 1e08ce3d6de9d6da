// Package ofx reads and writes bank statements in the OFX interchange
// format. The parser is deliberately lenient: OFX 1.x documents are SGML
// with unclosed leaf tags, OFX 2.x documents are well-formed XML, and real
// bank exports mix the two. Only the fields the ledger needs are extracted.
package ofx

// Statement holds the account identification and raw transaction records
// extracted from an OFX document.
type Statement struct {
	BankID       string
	AccountID    string
	Transactions []StatementTransaction
}

// StatementTransaction is one STMTTRN record, kept as raw strings. Malformed
// or missing fields degrade to empty strings; the import layer decides what
// is usable.
type StatementTransaction struct {
	FITID      string // bank-assigned unique ID, the dedup key on import
	Type       string // TRNTYPE tag, informational
	DatePosted string // DTPOSTED raw value, first 8 characters are YYYYMMDD
	Amount     string // TRNAMT signed decimal string
	Name       string // payee name
	Memo       string
}
