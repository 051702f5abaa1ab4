package scoring

// Opt 可缺失的数值输入
// 快照字段全部可空，评分公式只面对显式的“有值/缺失”两种情况
type Opt struct {
	Value float64
	Valid bool
}

// Some 构造有值输入
func Some(v float64) Opt {
	return Opt{Value: v, Valid: true}
}

// None 构造缺失输入
func None() Opt {
	return Opt{}
}

// FromPtr 从可空指针构造输入
func FromPtr(p *float64) Opt {
	if p == nil {
		return None()
	}
	return Some(*p)
}

// FromIntPtr 从可空整型指针构造输入
func FromIntPtr(p *int) Opt {
	if p == nil {
		return None()
	}
	return Some(float64(*p))
}

// Outcome 单一支柱的计算结果
type Outcome struct {
	Score     float64
	SubScores map[string]float64
	Available bool
}

// unavailable 输入完全缺失时的结果
func unavailable() Outcome {
	return Outcome{Available: false}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
