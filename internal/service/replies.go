package service

// User-visible texts, verbatim in the bot's conversational language. Errors
// are never surfaced raw to end users; every failure path maps to one of
// these.
const (
	replyNotRegistered  = "👋 Kamu belum terdaftar. Hubungi owner untuk akses."
	replyAccessExpired  = "⛔ Aksesmu telah kadaluarsa. Hubungi owner untuk perpanjangan."
	replyAccessInactive = "⛔ Aksesmu tidak aktif. Hubungi owner untuk mengaktifkan."
	replyQuotaExhausted = "⚠️ Kuotamu habis. Hubungi owner untuk top-up."

	noticeAccessRevoked  = "⛔ Masa aktif Anda telah habis. Hubungi owner untuk perpanjangan layanan."
	noticeExpiryReminder = "🔔 Pemberitahuan: Masa aktif Anda akan berakhir dalam %d hari. Hubungi owner untuk perpanjangan."
)

// fallbackReplies is the pool a failed completion call is answered from, one
// picked at random per failure.
var fallbackReplies = []string{
	"Maaf, saya sedang mengalami gangguan teknis. Bisakah Anda mengulangi pertanyaannya?",
	"Sistem saya sedang sibuk. Silakan coba lagi dalam beberapa saat.",
	"Saya sedang tidak bisa mengakses pengetahuan saya. Mohon coba sebentar lagi.",
}

const coachSystemPrompt = `Anda adalah AI coach profesional yang membantu pengguna dengan masalah sehari-hari.
Berikan respon yang empatik, suportif, dan memberikan solusi praktis.
Gunakan bahasa Indonesia yang santun dan mudah dimengerti.`
