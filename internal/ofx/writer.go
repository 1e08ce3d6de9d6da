package ofx

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header is the fixed OFX 1.0.2 SGML header emitted on export.
const Header = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

`

// ExportEntry is one ledger entry to serialize: the exported account's leg
// of a transaction. The offset leg is not part of the export.
type ExportEntry struct {
	TransactionID string
	Date          time.Time
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// Export describes one statement export request.
type Export struct {
	AccountID  string
	Start      time.Time
	End        time.Time
	ServerTime time.Time
	Entries    []ExportEntry
}

// Write serializes the export to an OFX document. Each entry becomes a
// STMTTRN whose signed amount is credit minus debit, so re-importing
// reproduces the original debit/credit split for this account's leg.
func Write(exp Export) []byte {
	var b strings.Builder
	b.WriteString(Header)

	fmt.Fprintf(&b, `<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0</CODE>
<SEVERITY>INFO</SEVERITY>
</STATUS>
<DTSERVER>%s</DTSERVER>
<LANGUAGE>ENG</LANGUAGE>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1</TRNUID>
<STATUS>
<CODE>0</CODE>
<SEVERITY>INFO</SEVERITY>
</STATUS>
<STMTRS>
<CURDEF>USD</CURDEF>
<BANKACCTFROM>
<BANKID>123456789</BANKID>
<ACCTID>%s</ACCTID>
<ACCTTYPE>CHECKING</ACCTTYPE>
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>%s</DTSTART>
<DTEND>%s</DTEND>
`, exp.ServerTime.Format("20060102150405"), exp.AccountID, exp.Start.Format("20060102"), exp.End.Format("20060102"))

	for _, e := range exp.Entries {
		amount := e.Credit.Sub(e.Debit)
		trnType := "DEBIT"
		if amount.IsPositive() {
			trnType = "CREDIT"
		}
		// Decimal.String trims trailing zeros; statement amounts keep a fixed
		// two-decimal scale.
		fmt.Fprintf(&b, `<STMTTRN>
<TRNTYPE>%s</TRNTYPE>
<DTPOSTED>%s</DTPOSTED>
<TRNAMT>%s</TRNAMT>
<FITID>%s</FITID>
<NAME>%s</NAME>
<MEMO>%s</MEMO>
</STMTTRN>
`, trnType, e.Date.Format("20060102"), amount.StringFixed(2), e.TransactionID, truncate(e.Description, 32), e.Description)
	}

	fmt.Fprintf(&b, `</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>0.00</BALAMT>
<DTASOF>%s</DTASOF>
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`, exp.End.Format("20060102"))

	return []byte(b.String())
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
