package feature

import "fmt"

// Schema 是定长、定序、不可变的特征槽位表。
//
// 槽位顺序必须与模型训练时的列顺序严格一致：任何重排都会无声地破坏预测结果，
// 且不会产生可检测的错误。因此 Schema 构造后没有任何修改路径，
// Names() 返回副本，内部切片不外露。
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema 按给定顺序创建 Schema。槽位名重复时返回错误。
func NewSchema(names ...string) (*Schema, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("schema: slot %d has empty name", i)
		}
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("schema: duplicate slot name %q", name)
		}
		index[name] = i
	}
	ordered := make([]string, len(names))
	copy(ordered, names)
	return &Schema{names: ordered, index: index}, nil
}

// MustNewSchema 同 NewSchema，错误时 panic。用于静态定义的内置 Schema。
func MustNewSchema(names ...string) *Schema {
	s, err := NewSchema(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len 返回槽位数。
func (s *Schema) Len() int {
	return len(s.names)
}

// Names 返回槽位名的有序副本。
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Index 返回槽位名对应的位置；不存在时返回 (0, false)。
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has 返回槽位名是否存在。
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// bankMarketingSlots 是银行电话营销定期存款模型的 58 个输入列，
// 与训练产物的列顺序一一对应（4 个数值列 + 1 个派生列 + 53 个 one-hot 列）。
var bankMarketingSlots = []string{
	"age",
	"campaign",
	"pdays",
	"previous",
	"no_previous_contact",

	"job_admin",
	"job_blue_collar",
	"job_entrepreneur",
	"job_housemaid",
	"job_management",
	"job_retired",
	"job_self_employed",
	"job_services",
	"job_student",
	"job_technician",
	"job_unemployed",
	"job_unknown",

	"marital_divorced",
	"marital_married",
	"marital_single",
	"marital_unknown",

	"education_basic_4y",
	"education_basic_6y",
	"education_basic_9y",
	"education_high_school",
	"education_illiterate",
	"education_professional_course",
	"education_university_degree",
	"education_unknown",

	"default_no",
	"default_unknown",
	"default_yes",

	"housing_no",
	"housing_unknown",
	"housing_yes",

	"loan_no",
	"loan_unknown",
	"loan_yes",

	"contact_cellular",
	"contact_telephone",

	"month_mar",
	"month_apr",
	"month_may",
	"month_jun",
	"month_jul",
	"month_aug",
	"month_sep",
	"month_oct",
	"month_nov",
	"month_dec",

	"day_of_week_mon",
	"day_of_week_tue",
	"day_of_week_wed",
	"day_of_week_thu",
	"day_of_week_fri",

	"poutcome_failure",
	"poutcome_nonexistent",
	"poutcome_success",
}

var bankMarketingSchema = MustNewSchema(bankMarketingSlots...)

// BankMarketing 返回内置的 58 槽位银行营销 Schema（进程级单例，只读）。
func BankMarketing() *Schema {
	return bankMarketingSchema
}
