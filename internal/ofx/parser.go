package ofx

import (
	"html"
	"strings"

	"github.com/openbooks/ledger/internal/apperrors"
)

// aggregate closers that terminate an open STMTTRN record in SGML documents
// where the record itself carries no closing tag.
var stmtTrnTerminators = map[string]bool{
	"STMTTRN":      true,
	"BANKTRANLIST": true,
	"STMTRS":       true,
	"STMTTRNRS":    true,
	"BANKMSGSRSV1": true,
	"OFX":          true,
}

// Parse extracts the bank account block and the statement transactions from
// an OFX document. A missing BANKACCTFROM block is a hard failure; missing
// leaf fields degrade to empty strings and never abort the parse.
func Parse(document []byte) (*Statement, error) {
	content := string(document)
	// Skip the OFX 1.x key:value header block, if present.
	if i := strings.Index(content, "<OFX>"); i >= 0 {
		content = content[i:]
	}

	stmt := &Statement{}
	var (
		sawBankAcct bool
		inBankAcct  bool
		inTxn       bool
		current     StatementTransaction
	)

	flush := func() {
		if inTxn {
			stmt.Transactions = append(stmt.Transactions, current)
			current = StatementTransaction{}
			inTxn = false
		}
	}

	pos := 0
	for {
		lt := strings.IndexByte(content[pos:], '<')
		if lt < 0 {
			break
		}
		lt += pos
		gt := strings.IndexByte(content[lt:], '>')
		if gt < 0 {
			break
		}
		gt += lt

		tag := strings.TrimSpace(content[lt+1 : gt])
		pos = gt + 1

		// Leaf values run from the closing bracket to the next tag.
		// Character entities (&amp;, &lt;, ...) arrive encoded in both SGML
		// and XML documents and are decoded here.
		var text string
		if next := strings.IndexByte(content[pos:], '<'); next >= 0 {
			text = strings.TrimSpace(content[pos : pos+next])
		} else {
			text = strings.TrimSpace(content[pos:])
		}
		text = html.UnescapeString(text)

		if name, ok := strings.CutPrefix(tag, "/"); ok {
			name = strings.ToUpper(strings.TrimSpace(name))
			if inTxn && stmtTrnTerminators[name] {
				flush()
			}
			if name == "BANKACCTFROM" {
				inBankAcct = false
			}
			continue
		}

		switch strings.ToUpper(tag) {
		case "BANKACCTFROM":
			sawBankAcct = true
			inBankAcct = true
		case "STMTTRN":
			flush() // an unclosed previous record ends when the next one opens
			inTxn = true
		case "BANKID":
			if inBankAcct {
				stmt.BankID = text
			}
		case "ACCTID":
			if inBankAcct {
				stmt.AccountID = text
			}
		case "FITID":
			if inTxn {
				current.FITID = text
			}
		case "TRNTYPE":
			if inTxn {
				current.Type = text
			}
		case "DTPOSTED":
			if inTxn {
				current.DatePosted = text
			}
		case "TRNAMT":
			if inTxn {
				current.Amount = text
			}
		case "NAME":
			if inTxn {
				current.Name = text
			}
		case "MEMO":
			if inTxn {
				current.Memo = text
			}
		}
	}
	flush()

	if !sawBankAcct {
		return nil, &apperrors.ParseError{Msg: "no bank account information found in document"}
	}
	return stmt, nil
}
