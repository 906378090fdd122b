package board

// House is one of the 72 positions on the Maha Lilah board. The catalog is
// static reference data; rooms never own or mutate it.
type House struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reflection  string `json:"reflection"`
}

func Houses() []House {
	out := make([]House, len(houses))
	copy(out, houses)
	return out
}

func HouseByNumber(n int) (House, bool) {
	if n < 1 || n > len(houses) {
		return House{}, false
	}
	return houses[n-1], true
}

var houses = []House{
	{1, "Nascimento", "Janma. The soul enters the game and takes a body.", "What is being born in your life right now?"},
	{2, "Ilusão", "Maya. The veil that makes the transient look permanent.", "Which certainty of yours might be an illusion?"},
	{3, "Raiva", "Krodha. Fire that burns the one who holds it.", "Where does your anger want to protect you?"},
	{4, "Ganância", "Lobha. Wanting more as a way of not feeling enough.", "What do you accumulate that you no longer need?"},
	{5, "Plano físico", "Bhu-loka. The concrete world of body and matter.", "How do you inhabit your body today?"},
	{6, "Apego", "Moha. Clinging to people and outcomes.", "What are you afraid of losing?"},
	{7, "Vaidade", "Mada. Pride in the mirror's reflection.", "Whose approval are you performing for?"},
	{8, "Avareza", "Matsara. Envy disguised as scarcity.", "What do you withhold from others, and why?"},
	{9, "Plano sensual", "Kama-loka. The pull of the senses and desire.", "Which desire deserves honest attention?"},
	{10, "Purificação", "Tapas. Discipline that clears the way upward.", "What practice cleanses you?"},
	{11, "Entretenimento", "Gandharva-loka. Art, music and play.", "When did you last play without purpose?"},
	{12, "Inveja", "Irshya. Measuring your insides by others' outsides.", "Whose life do you compare with yours?"},
	{13, "Nulidade", "Antariksha. Suspension, the feeling of floating without ground.", "Where in your life do you feel weightless or lost?"},
	{14, "Plano astral", "Bhuvar-loka. The world of dreams and imagination.", "What recurring dream asks to be heard?"},
	{15, "Plano da fantasia", "Naga-loka. Stories the mind tells to escape.", "Which fantasy keeps you from acting?"},
	{16, "Ciúme", "Dvesha. Fear of losing love turned into vigilance.", "What would trust change in your relationships?"},
	{17, "Compaixão", "Daya. Feeling with another, the fast arrow upward.", "Who needs your compassion today, including yourself?"},
	{18, "Plano da alegria", "Harsha-loka. Joy as a state, not a reward.", "What gives you joy with no condition attached?"},
	{19, "Plano da ação", "Karma-loka. Acts and their echoes.", "Which action are you postponing?"},
	{20, "Caridade", "Dana. Giving without keeping accounts.", "What can you give away freely this week?"},
	{21, "Expiação", "Samana. Repairing what was broken.", "What asks for repair in your history?"},
	{22, "Plano do dharma", "Dharma-loka. Living in line with your purpose.", "Where is your life aligned with what you believe?"},
	{23, "Céus", "Swarga-loka. Reward, comfort, the pleasant plateau.", "What comfort might be keeping you asleep?"},
	{24, "Má companhia", "Ku-sanga. Bonds that pull you down.", "Which relationship drains you?"},
	{25, "Boa companhia", "Su-sanga. Bonds that lift you.", "Who brings out your best?"},
	{26, "Tristeza", "Dukha. Sorrow as a door, not a dead end.", "What loss still asks to be grieved?"},
	{27, "Serviço", "Seva. Selfless work that dissolves the small self.", "How can you serve without expecting return?"},
	{28, "Religiosidade verdadeira", "Sudharma. Faith lived, not displayed.", "What do you actually have faith in?"},
	{29, "Irreligiosidade", "Adharma. Acting against one's own truth.", "Where do you betray yourself?"},
	{30, "Boas tendências", "Uttama gati. Habits that carry you upward.", "Which habit is quietly saving you?"},
	{31, "Plano da santidade", "Yaksha-loka. Reverence for the sacred in the ordinary.", "What do you treat as sacred?"},
	{32, "Plano do equilíbrio", "Mahar-loka. Balance after turbulence.", "What needs rebalancing: work, rest, or love?"},
	{33, "Plano dos aromas", "Gandha-loka. Subtle perception, memory through the senses.", "Which memory returns through your senses?"},
	{34, "Plano do sabor", "Rasa-loka. Tasting life fully.", "What are you consuming without tasting?"},
	{35, "Purgatório", "Naraka-loka. The narrow passage of consequences.", "Which consequence are you avoiding to face?"},
	{36, "Clareza de consciência", "Swaccha. Clean perception without distortion.", "What becomes obvious when you stop justifying?"},
	{37, "Sabedoria", "Jnana. Knowledge digested into being.", "What has life taught you that no book could?"},
	{38, "Prana", "Prana-loka. The plane of vital energy.", "What feeds your energy, what burns it?"},
	{39, "Apana", "Apana-loka. Elimination, letting go downward.", "What must leave your life to make room?"},
	{40, "Vyana", "Vyana-loka. Circulation, energy reaching every part.", "Which part of your life is not being nourished?"},
	{41, "Plano humano", "Jana-loka. The fully human plane of choice.", "What choice makes you most human?"},
	{42, "Plano do fogo", "Agni-loka. Transformation by heat.", "What in you is being forged right now?"},
	{43, "Nascimento do homem", "Manushya-janma. A second, conscious birth.", "If you could begin again today, what would you keep?"},
	{44, "Ignorância", "Avidya. Not-knowing mistaken for knowing.", "What do you pretend to understand?"},
	{45, "Conhecimento correto", "Suvidya. Seeing things as they are.", "What truth have you recently accepted?"},
	{46, "Discernimento", "Viveka. Separating the real from the apparent.", "What decision needs your discernment now?"},
	{47, "Plano da neutralidade", "Saraswati. Stillness between the opposites.", "Where can you stop taking sides?"},
	{48, "Plano solar", "Yamuna. Radiance, warmth given outward.", "Who receives your light?"},
	{49, "Plano do ascetismo", "Gandaki. Renunciation chosen, not imposed.", "What could you renounce without resentment?"},
	{50, "Plano da austeridade", "Tapa-loka. Heat of sustained effort.", "Which effort is worth sustaining for years?"},
	{51, "Terra", "Prithvi. Groundedness, patience of the soil.", "What grounds you when everything shakes?"},
	{52, "Plano da violência", "Himsa-loka. Force turned against life.", "Where are you harsh with yourself or others?"},
	{53, "Plano líquido", "Jala-loka. Fluidity, adaptation, tears.", "What asks you to flow instead of fight?"},
	{54, "Devoção", "Bhakti-loka. Love as a path, the steep arrow.", "What do you love enough to surrender to?"},
	{55, "Egoísmo", "Ahamkara. The self inflated into a wall.", "Where does your ego make you lonely?"},
	{56, "Plano das vibrações primordiais", "Omkara. The hum beneath all forms.", "What do you hear in silence?"},
	{57, "Plano gasoso", "Vayu-loka. Lightness, breath, impermanence.", "What could you hold more lightly?"},
	{58, "Plano da radiação", "Teja-loka. Influence that travels beyond sight.", "What do you radiate into a room?"},
	{59, "Plano da realidade", "Satya-loka. What remains when stories end.", "What is simply true, right now?"},
	{60, "Intelecto positivo", "Subuddhi. Mind in service of the heart.", "When does your thinking serve you best?"},
	{61, "Intelecto negativo", "Durbuddhi. Mind turned cynical and small.", "Which thought pattern sabotages you?"},
	{62, "Felicidade", "Sukha. Contentment that needs no reason.", "What was the last moment of unearned happiness?"},
	{63, "Escuridão", "Tamas. Heaviness, stagnation, the long snake.", "What keeps you in the dark by your own choice?"},
	{64, "Plano fenomenal", "Prakriti-loka. The dance of forms and forces.", "What pattern keeps repeating in your life?"},
	{65, "Plano interior", "Uranta-loka. The inner space behind the eyes.", "What do you find when you turn inward?"},
	{66, "Plano da beatitude", "Ananda-loka. Bliss without object.", "What would remain if you needed nothing?"},
	{67, "Plano do bem cósmico", "Rudra-loka. Goodness at the scale of the whole.", "How does your life serve something larger?"},
	{68, "Consciência cósmica", "Vaikuntha-loka. The drop aware of the ocean.", "When have you felt part of everything?"},
	{69, "Plano do absoluto", "Brahma-loka. Beyond name, form and game.", "What question no longer needs an answer?"},
	{70, "Sattva", "Sattvaguna. Clarity, harmony, translucence.", "What does your life look like on a clear day?"},
	{71, "Rajas", "Rajoguna. Restless movement, ambition, fire.", "What is your restlessness searching for?"},
	{72, "Tamas final", "Tamoguna. The last inertia before completion.", "What remains to be released before you arrive?"},
}
