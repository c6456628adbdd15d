package chart

// Option mirrors the subset of the ECharts option object the dashboard uses.
// The zero value marshals to {} and renders an empty chart.
type Option struct {
	Title   *Title   `json:"title,omitempty"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
	XAxis   *Axis    `json:"xAxis,omitempty"`
	YAxis   *Axis    `json:"yAxis,omitempty"`
	Series  []Series `json:"series,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Left string `json:"left,omitempty"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
	Formatter   string       `json:"formatter,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type"`
}

type Axis struct {
	Type string   `json:"type"`
	Name string   `json:"name,omitempty"`
	Data []string `json:"data,omitempty"`
}

// Series data holds int64 counts for bar/line and PieItem values for pie.
type Series struct {
	Name      string     `json:"name,omitempty"`
	Type      string     `json:"type"`
	Data      []any      `json:"data"`
	Smooth    bool       `json:"smooth,omitempty"`
	Radius    string     `json:"radius,omitempty"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
	Emphasis  *Emphasis  `json:"emphasis,omitempty"`
}

type PieItem struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type ItemStyle struct {
	Color         string  `json:"color,omitempty"`
	ShadowBlur    float64 `json:"shadowBlur,omitempty"`
	ShadowOffsetX float64 `json:"shadowOffsetX,omitempty"`
	ShadowColor   string  `json:"shadowColor,omitempty"`
}

type Emphasis struct {
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

func (o Option) IsEmpty() bool {
	return o.Title == nil && o.Tooltip == nil && o.XAxis == nil && o.YAxis == nil && len(o.Series) == 0
}

// Categories returns the x-axis labels, or the pie slice names for pie charts.
func (o Option) Categories() []string {
	if o.XAxis != nil {
		return o.XAxis.Data
	}
	if len(o.Series) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.Series[0].Data))
	for _, d := range o.Series[0].Data {
		if item, ok := d.(PieItem); ok {
			names = append(names, item.Name)
		}
	}
	return names
}

// Values returns the first series' counts regardless of chart type.
func (o Option) Values() []int64 {
	if len(o.Series) == 0 {
		return nil
	}
	values := make([]int64, 0, len(o.Series[0].Data))
	for _, d := range o.Series[0].Data {
		switch v := d.(type) {
		case int64:
			values = append(values, v)
		case PieItem:
			values = append(values, v.Value)
		}
	}
	return values
}
