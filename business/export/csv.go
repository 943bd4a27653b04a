package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
)

// ContentType is the MIME type for generated CSV downloads.
const ContentType = "text/csv;charset=utf-8"

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"hash", "type", "counterparty", "amount", "fee",
	"timestamp", "block_height", "memo", "status",
}

// ToCSV renders transactions as an RFC 4180 CSV document. Amounts are in
// display units, memos are decoded, and every exported row is a confirmed
// transaction.
func ToCSV(txs []domain.AccountTransaction) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range txs {
		amount := ""
		if tx.Amount != nil {
			amount = tx.Amount.ToDecimal().String()
		}
		row := []string{
			tx.Hash,
			string(tx.Direction),
			tx.Counterparty,
			amount,
			tx.Fee.ToDecimal().String(),
			tx.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatUint(tx.BlockHeight, 10),
			domain.DecodeMemo(tx.Memo),
			"confirmed",
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the suggested download name from the account key and the
// export date.
func Filename(publicKey string, now time.Time) string {
	prefix := publicKey
	if len(prefix) > 12 {
		prefix = prefix[:12]
	}
	return fmt.Sprintf("%s_transactions_%s.csv", prefix, now.UTC().Format("2006-01-02"))
}
