package survey

import "sort"

// Display sections, in fixed order.
const (
	SectionPersonal     = "Personal Info"
	SectionCCAwareness  = "Citizen's Charter Awareness"
	SectionSatisfaction = "Service Satisfaction"
	SectionFeedback     = "Feedback"
)

var sectionOrder = map[string]int{
	SectionPersonal:     0,
	SectionCCAwareness:  1,
	SectionSatisfaction: 2,
	SectionFeedback:     3,
}

// SectionOrder returns the display position of a section. Unknown sections
// sort last.
func SectionOrder(section string) int {
	if n, ok := sectionOrder[section]; ok {
		return n
	}
	return len(sectionOrder)
}

// Section groups a run of fields for display.
type Section struct {
	Name   string            `json:"name"`
	Fields []FieldDefinition `json:"fields"`
}

// GroupSections groups the fields by section in the fixed display order,
// regardless of how the field list itself is sorted. Fields keep their
// relative order inside each section; unknown sections land at the end.
func GroupSections(fields []FieldDefinition) []Section {
	var sections []Section
	index := map[string]int{}
	for _, f := range fields {
		i, ok := index[f.Section]
		if !ok {
			i = len(sections)
			index[f.Section] = i
			sections = append(sections, Section{Name: f.Section})
		}
		sections[i].Fields = append(sections[i].Fields, f)
	}
	sort.SliceStable(sections, func(a, b int) bool {
		return SectionOrder(sections[a].Name) < SectionOrder(sections[b].Name)
	})
	return sections
}

var scale5 = []MatrixColumn{
	{Value: "1", Label: "Strongly Disagree", Emoji: "😠"},
	{Value: "2", Label: "Disagree", Emoji: "🙁"},
	{Value: "3", Label: "Neither Agree nor Disagree", Emoji: "😐"},
	{Value: "4", Label: "Agree", Emoji: "🙂"},
	{Value: "5", Label: "Strongly Agree", Emoji: "😍"},
	{Value: NotApplicable, Label: "Not Applicable", Emoji: "🚫"},
}

// DefaultFields is the in-code survey schema: used whenever the store has
// no field rows, and as the content seeded into it on first run.
func DefaultFields() []FieldDefinition {
	return []FieldDefinition{
		ChoiceField(TypeRadio, SectionPersonal, ClientTypeField, "Client type", true, []Option{
			{Value: "citizen", Label: "Citizen"},
			{Value: "business", Label: "Business"},
			{Value: "government", Label: "Government (employee or another agency)"},
			{Value: OtherValue, Label: "Others (please specify)"},
		}),
		TextField(SectionPersonal, "date", "Date of visit", true, false),
		ChoiceField(TypeRadio, SectionPersonal, "sex", "Sex", true, []Option{
			{Value: "male", Label: "Male"},
			{Value: "female", Label: "Female"},
		}),
		TextField(SectionPersonal, AgeField, "Age", true, false),
		ChoiceField(TypeSelect, SectionPersonal, "region", "Region of residence", true, regionOptions),
		TextField(SectionPersonal, "serviceAvailed", "Service availed", true, false),

		ChoiceField(TypeRadio, SectionCCAwareness, "ccAwareness",
			"Which of the following best describes your awareness of the Citizen's Charter?", true, []Option{
				{Value: "1", Label: "I know what a CC is and I saw this office's CC"},
				{Value: "2", Label: "I know what a CC is but I did NOT see this office's CC"},
				{Value: "3", Label: "I learned of the CC only when I saw this office's CC"},
				{Value: "4", Label: "I do not know what a CC is and I did not see one in this office"},
			}).WithInstruction("The Citizen's Charter (CC) is an official document listing the services of a government agency."),
		ChoiceField(TypeRadio, SectionCCAwareness, "ccVisibility",
			"If aware of the CC, would you say that the CC of this office was...?", true, []Option{
				{Value: "1", Label: "Easy to see"},
				{Value: "2", Label: "Somewhat easy to see"},
				{Value: "3", Label: "Difficult to see"},
				{Value: "4", Label: "Not visible at all"},
			}).SkipWhen("ccAwareness", "4"),
		ChoiceField(TypeRadio, SectionCCAwareness, "ccHelp",
			"If aware of the CC, how much did the CC help you in your transaction?", true, []Option{
				{Value: "1", Label: "Helped very much"},
				{Value: "2", Label: "Somewhat helped"},
				{Value: "3", Label: "Did not help"},
			}).SkipWhen("ccAwareness", "4"),

		MatrixField(SectionSatisfaction, "sqd", "Service Quality Dimensions", true, []MatrixRow{
			{Name: "sqd0", Label: "I am satisfied with the service that I availed."},
			{Name: "sqd1", Label: "I spent a reasonable amount of time for my transaction."},
			{Name: "sqd2", Label: "The office followed the transaction's requirements and steps based on the information provided."},
			{Name: "sqd3", Label: "The steps (including payment) I needed to do for my transaction were easy and simple."},
			{Name: "sqd4", Label: "I easily found information about my transaction from the office or its website."},
			{Name: "sqd5", Label: "I paid a reasonable amount of fees for my transaction."},
			{Name: "sqd6", Label: "I feel the office was fair to everyone during my transaction."},
			{Name: "sqd7", Label: "I was treated courteously by the staff, and the staff was helpful."},
			{Name: "sqd8", Label: "I got what I needed from the government office."},
		}, scale5).WithInstruction("For each statement, choose the answer that best fits your experience."),

		TextField(SectionFeedback, "suggestions", "Suggestions on how we can further improve our services", false, true),
		TextField(SectionFeedback, "email", "Email address (optional)", false, false),
	}
}

var regionOptions = []Option{
	{Value: "ncr", Label: "National Capital Region"},
	{Value: "car", Label: "Cordillera Administrative Region"},
	{Value: "r1", Label: "Region I - Ilocos"},
	{Value: "r2", Label: "Region II - Cagayan Valley"},
	{Value: "r3", Label: "Region III - Central Luzon"},
	{Value: "r4a", Label: "Region IV-A - Calabarzon"},
	{Value: "r4b", Label: "Mimaropa"},
	{Value: "r5", Label: "Region V - Bicol"},
	{Value: "r6", Label: "Region VI - Western Visayas"},
	{Value: "r7", Label: "Region VII - Central Visayas"},
	{Value: "r8", Label: "Region VIII - Eastern Visayas"},
	{Value: "r9", Label: "Region IX - Zamboanga Peninsula"},
	{Value: "r10", Label: "Region X - Northern Mindanao"},
	{Value: "r11", Label: "Region XI - Davao"},
	{Value: "r12", Label: "Region XII - Soccsksargen"},
	{Value: "r13", Label: "Region XIII - Caraga"},
	{Value: "barmm", Label: "Bangsamoro Autonomous Region"},
}
