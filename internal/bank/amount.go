// internal/bank/amount.go

package bank

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var (
	errNilAmount   = errors.New("amount is nil")
	errAmountRange = errors.New("amount out of int64 range")
)

// toInt 將呼叫端輸入轉為整數金額。
// 字串先去除前後空白後以十進位解析（終端機與表單輸入皆為字串）；
// json.Number 先依整數字面精確解析，非整數字面再走浮點路徑；
// 浮點數向零截斷，超出 int64 範圍者拒絕；其餘型別交給 cast（布林值轉為 0/1）。
func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, errNilAmount
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	case json.Number:
		if n, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, errors.Wrapf(errAmountRange, "%s", x)
		}
		return floatToInt(f)
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	default:
		return cast.ToInt64E(v)
	}
}

// floatToInt 向零截斷；NaN、無限大與超出 int64 的值皆回傳錯誤。
func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || f >= 1<<63 || f < -(1<<63) {
		return 0, errors.Wrapf(errAmountRange, "%g", f)
	}
	return int64(f), nil
}
