package theme

// DefaultStrengthPatterns is the built-in strength table.
var DefaultStrengthPatterns = []Pattern{
	{Label: "Strong memory skills", Triggers: []string{"memor*", "recall*", "remember*"}},
	{Label: "Strong auditory processing", Triggers: []string{"auditory", "aural", "listen*", "hearing", "hears", "heard"}},
	{Label: "Visual awareness", Triggers: []string{"visual*", "observ*", "notic*", "sees", "eye for detail"}},
	{Label: "Creative expression", Triggers: []string{"creativ*", "art", "arts", "artist*", "artwork*", "music*", "drawing*", "draws", "paint*", "design*"}},
	{Label: "Social engagement", Triggers: []string{"social*", "friend*", "peer*", "communicat*", "collaborat*", "team work*"}},
	{Label: "Technology proficiency", Triggers: []string{"technolog*", "tech", "comput*", "digital*", "software", "device*", "coding", "screen reader*"}},
	{Label: "Literacy strengths", Triggers: []string{"read", "reading", "reads", "reader*", "literac*", "literat*", "writing", "writes", "writer*", "story", "stories", "storytell*", "book*", "narrat*"}},
	{Label: "Mathematical thinking", Triggers: []string{"math*", "number*", "numer*", "calculat*", "quantitat*"}},
	{Label: "Organisational skills", Triggers: []string{"organis*", "organiz*", "plan", "plans", "planning", "planner*", "schedul*", "time manag*"}},
	{Label: "Persistence and motivation", Triggers: []string{"persist*", "persever*", "determin*", "resilien*", "motivat*", "driven", "hard work*"}},
	{Label: "Self-advocacy", Triggers: []string{"advoca*", "self advoca*", "speak up", "speaks up", "speaking up", "voice"}},
	{Label: "Analytical thinking", Triggers: []string{"problem solv*", "analy*", "critical think*", "logic*", "reason*"}},
	{Label: "Intellectual curiosity", Triggers: []string{"curio*", "question*", "explor*", "investigat*", "inquisit*"}},
	{Label: "Empathy and compassion", Triggers: []string{"empath*", "caring", "kind", "kindness", "compassion*"}},
	{Label: "Leadership", Triggers: []string{"leader*", "leads", "leading", "mentor*", "initiative"}},
	{Label: "Adaptability", Triggers: []string{"adapt*", "flexib*", "adjust*"}},
	{Label: "Focused attention", Triggers: []string{"focus*", "concentrat*", "attention", "attentive"}},
	{Label: "Physical/kinaesthetic strengths", Triggers: []string{"kinesthet*", "kinaesthet*", "movement", "physical*", "motor", "sport*", "athlet*"}},
	{Label: "Sense of humour", Triggers: []string{"humor*", "humour*", "funny", "joke*"}},
	{Label: "Science aptitude", Triggers: []string{"scien*", "biolog*", "chemist*", "physics", "lab", "labs", "experiment*"}},
}

// DefaultGoalPatterns is the built-in goal table.
var DefaultGoalPatterns = []Pattern{
	{Label: "Post-secondary education", Triggers: []string{"post secondary", "college*", "universit*", "higher ed*", "degree*", "tertiary"}},
	{Label: "Career aspirations", Triggers: []string{"career*", "job", "jobs", "employ*", "work", "working", "profession*", "internship*", "apprentice*"}},
	{Label: "Independence", Triggers: []string{"independen*", "self suffic*", "autonom*", "on my own", "on their own"}},
	{Label: "Community participation", Triggers: []string{"communit*", "belong*", "inclus*", "included", "volunteer*"}},
	{Label: "Technology/STEM interests", Triggers: []string{"technolog*", "comput*", "stem", "engineer*", "coding", "programming", "robot*"}},
	{Label: "Creative pursuits", Triggers: []string{"art", "arts", "artist*", "music*", "creativ*", "perform*", "theater*", "theatre*", "film*"}},
	{Label: "Advocacy and rights", Triggers: []string{"advoca*", "rights", "justice", "activis*", "policy"}},
	{Label: "Exploration and travel", Triggers: []string{"travel*", "explor*", "abroad", "adventure*"}},
	{Label: "Health and wellbeing", Triggers: []string{"health*", "wellbeing", "well being", "fitness", "wellness"}},
	{Label: "Mentoring others", Triggers: []string{"mentor*", "teach", "teaching", "teacher", "help others", "helping others", "role model*"}},
}
