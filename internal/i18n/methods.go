package i18n

// methodNamesAr maps the API's English method names to Arabic.
var methodNamesAr = map[string]string{
	"Muslim World League":                                 "رابطة العالم الإسلامي",
	"Islamic Society of North America (ISNA)":             "الاتحاد الإسلامي بأمريكا الشمالية (ISNA)",
	"Egyptian General Authority of Survey":                "الهيئة المصرية العامة للمساحة",
	"Umm Al-Qura University, Makkah":                      "أم القرى، مكة المكرمة",
	"University of Islamic Sciences, Karachi":             "جامعة العلوم الإسلامية كراتشي",
	"Institute of Geophysics, University of Tehran":       "معهد الجيوفيزياء، جامعة طهران",
	"Shia Ithna-Ashari, Leva Institute, Qum":              "الشيعة الإثنا عشرية، معهد ليفا، قم",
	"Gulf Region":                                         "الخليج",
	"Kuwait":                                              "الكويت",
	"Qatar":                                               "قطر",
	"Majlis Ugama Islam Singapura, Singapore":             "مجلس الشريعة الإسلامية سنغافورة",
	"Union Organization Islamic de France":                "الاتحاد الفرنسي للمنظمات الإسلامية",
	"Diyanet İşleri Başkanlığı, Turkey (experimental)":    "رئاسة الشؤون الدينية، تركيا (تجريبي)",
	"Spiritual Administration of Muslims of Russia":       "الإدارة الروحية لمسلمي روسيا",
	"Moonsighting Committee Worldwide (Moonsighting.com)": "لجنة رؤية الهلال العالمية",
	"Dubai (experimental)":                                "دبي (تجريبي)",
	"Jabatan Kemajuan Islam Malaysia (JAKIM)":             "وزارة الشؤون الإسلامية بماليزيا (جاكيم)",
	"Tunisia":                              "تونس",
	"Algeria":                              "الجزائر",
	"Kementerian Agama Republik Indonesia": "وزارة الشؤون الدينية بجمهورية إندونيسيا",
	"Morocco":                              "المغرب",
	"Comunidade Islamica de Lisboa":        "الجالية الإسلامية بلشبونة",
	"Ministry of Awqaf, Islamic Affairs and Holy Places, Jordan": "وزارة الأوقاف والشؤون الإسلامية والمقدسات، الأردن",
	"Custom": "مخصص",
}

// MethodNameAr returns the Arabic name of a calculation method, or the
// English name when no translation exists.
func MethodNameAr(en string) string {
	if ar, ok := methodNamesAr[en]; ok {
		return ar
	}
	return en
}
