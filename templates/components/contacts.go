package components

// Company contacts shown in the header, footer and privacy policy
const (
	SiteName      = "B2B Sales"
	SiteTagline   = "Нейросети для B2B-продаж"
	PhoneDisplay  = "+7 926 731 88 59"
	PhoneHref     = "tel:+79267318859"
	ContactEmail  = "email@btbsales.ru"
	WebsiteURL    = "https://www.btbsales.ru"
	WebsiteLabel  = "www.btbsales.ru"
	TrainingsURL  = "https://btbsales.ru/trainings/"
	ArticlesURL   = "https://btbsales.ru/stati/"
	VideoURL      = "https://vkvideo.ru/playlist/-228629411_2"
	ContactFormID = "contact-form"
)
