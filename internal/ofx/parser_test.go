package ofx_test

import (
	"testing"

	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/ofx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sgmlDocument = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>021000021
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101
<DTEND>20240131
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000
<TRNAMT>1250.00
<FITID>2024011501
<NAME>ACME Corp payroll
<MEMO>Direct deposit
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240118
<TRNAMT>-42.75
<FITID>2024011801
<NAME>Corner grocery
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

const xmlDocument = `<?xml version="1.0" encoding="UTF-8"?>
<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<BANKACCTFROM>
<BANKID>021000021</BANKID>
<ACCTID>1234567890</ACCTID>
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT</TRNTYPE>
<DTPOSTED>20240120</DTPOSTED>
<TRNAMT>-10.00</TRNAMT>
<FITID>2024012001</FITID>
<NAME>Coffee</NAME>
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestParse_SGMLDocument(t *testing.T) {
	stmt, err := ofx.Parse([]byte(sgmlDocument))
	require.NoError(t, err)

	assert.Equal(t, "021000021", stmt.BankID)
	assert.Equal(t, "1234567890", stmt.AccountID)
	require.Len(t, stmt.Transactions, 2)

	first := stmt.Transactions[0]
	assert.Equal(t, "CREDIT", first.Type)
	assert.Equal(t, "20240115120000", first.DatePosted)
	assert.Equal(t, "1250.00", first.Amount)
	assert.Equal(t, "2024011501", first.FITID)
	assert.Equal(t, "ACME Corp payroll", first.Name)
	assert.Equal(t, "Direct deposit", first.Memo)

	second := stmt.Transactions[1]
	assert.Equal(t, "2024011801", second.FITID)
	assert.Equal(t, "-42.75", second.Amount)
	assert.Empty(t, second.Memo)
}

func TestParse_XMLDocument(t *testing.T) {
	stmt, err := ofx.Parse([]byte(xmlDocument))
	require.NoError(t, err)

	assert.Equal(t, "021000021", stmt.BankID)
	assert.Equal(t, "1234567890", stmt.AccountID)
	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "2024012001", stmt.Transactions[0].FITID)
	assert.Equal(t, "-10.00", stmt.Transactions[0].Amount)
}

func TestParse_UnclosedRecordsSeparatedByNextOpener(t *testing.T) {
	// SGML documents may run records together with no closing tag at all;
	// the next <STMTTRN> terminates the previous record.
	document := `<OFX>
<BANKACCTFROM>
<BANKID>1
<ACCTID>2
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<FITID>A
<TRNAMT>1.00
<STMTTRN>
<FITID>B
<TRNAMT>2.00
</BANKTRANLIST>
</OFX>
`
	stmt, err := ofx.Parse([]byte(document))
	require.NoError(t, err)
	require.Len(t, stmt.Transactions, 2)
	assert.Equal(t, "A", stmt.Transactions[0].FITID)
	assert.Equal(t, "B", stmt.Transactions[1].FITID)
}

func TestParse_DecodesCharacterEntities(t *testing.T) {
	document := `<OFX>
<BANKACCTFROM>
<BANKID>1
<ACCTID>2
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<FITID>A
<TRNAMT>-12.00
<NAME>Barnes &amp; Noble
<MEMO>books &lt;sale&gt;
</STMTTRN>
</BANKTRANLIST>
</OFX>
`
	stmt, err := ofx.Parse([]byte(document))
	require.NoError(t, err)
	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "Barnes & Noble", stmt.Transactions[0].Name)
	assert.Equal(t, "books <sale>", stmt.Transactions[0].Memo)
}

func TestParse_MissingBankAccountBlock(t *testing.T) {
	document := `<OFX>
<BANKTRANLIST>
<STMTTRN>
<FITID>A
<TRNAMT>1.00
</STMTTRN>
</BANKTRANLIST>
</OFX>
`
	stmt, err := ofx.Parse([]byte(document))
	require.Error(t, err)
	assert.Nil(t, stmt)

	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParse_FieldsOutsideRecordsIgnored(t *testing.T) {
	// A stray FITID outside any STMTTRN must not leak into a record.
	document := `<OFX>
<BANKACCTFROM>
<BANKID>1
<ACCTID>2
</BANKACCTFROM>
<FITID>STRAY
<BANKTRANLIST>
<STMTTRN>
<FITID>REAL
<TRNAMT>1.00
</STMTTRN>
</BANKTRANLIST>
</OFX>
`
	stmt, err := ofx.Parse([]byte(document))
	require.NoError(t, err)
	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "REAL", stmt.Transactions[0].FITID)
}

func TestParse_EmptyDocument(t *testing.T) {
	stmt, err := ofx.Parse([]byte(""))
	require.Error(t, err)
	assert.Nil(t, stmt)
}
