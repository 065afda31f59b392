package flagtype

import "k8s.io/apimachinery/pkg/api/resource"

// Quantity is a flag of size, like "50Mi" or "1G".
type Quantity resource.Quantity

func (q *Quantity) String() string {
	if q == nil {
		return ""
	}
	return (*resource.Quantity)(q).String()
}

func (q *Quantity) Set(expr string) error {
	parsed, err := resource.ParseQuantity(expr)
	if err != nil {
		return err
	}
	*q = (Quantity)(parsed)
	return nil
}

func (q *Quantity) AsResourceQuantity() *resource.Quantity {
	return (*resource.Quantity)(q)
}

// Bytes is the quantity as a number of bytes, rounded up.
func (q *Quantity) Bytes() int64 {
	return q.AsResourceQuantity().Value()
}

func MustParse(expr string) *Quantity {
	q := Quantity{}
	if err := q.Set(expr); err != nil {
		panic(err)
	}
	return &q
}
