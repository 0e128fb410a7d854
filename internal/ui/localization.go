package ui

import (
	"fmt"

	"github.com/ytget/donation-board/internal/form"
	"github.com/ytget/donation-board/internal/gateway"
	"github.com/ytget/donation-board/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyRefresh           = "refresh"
	KeyLanguage          = "language"
	KeyNewDonation       = "new_donation"
	KeyDonations         = "donations"
	KeyNoDonations       = "no_donations"
	KeyItemName          = "item_name"
	KeyDescription       = "description"
	KeyLocation          = "location"
	KeyContact           = "contact"
	KeyImage             = "image"
	KeyDropImage         = "drop_image"
	KeyBrowse            = "browse"
	KeyRemove            = "remove"
	KeySubmit            = "submit"
	KeySubmitting        = "submitting"
	KeySubmitSuccess     = "submit_success"
	KeySubmitFailed      = "submit_failed"
	KeyLoadFailed        = "load_failed"
	KeyFieldRequired     = "field_required"
	KeyFieldMinLength    = "field_min_length"
	KeyUnsupportedType   = "unsupported_type"
	KeyFileTooLarge      = "file_too_large"
	KeyCannotReadFile    = "cannot_read_file"
	KeyOpenImage         = "open_image"
	KeyAPIBaseURL        = "api_base_url"
	KeyRequestTimeout    = "request_timeout"
	KeyStrictContact     = "strict_contact"
	KeyFromEnvironment   = "from_environment"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeySettingsOnRestart = "settings_on_restart"
	KeyNotice            = "notice"
)

var fieldLabelKeys = map[model.Field]string{
	model.FieldItemName:    KeyItemName,
	model.FieldDescription: KeyDescription,
	model.FieldLocation:    KeyLocation,
	model.FieldContact:     KeyContact,
	model.FieldFile:        KeyImage,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// FieldLabel returns the display label of a form field
func (l *Localization) FieldLabel(field model.Field) string {
	return l.GetText(fieldLabelKeys[field])
}

// FieldError renders a failed validation rule as a sentence
func (l *Localization) FieldError(field model.Field, tag string) string {
	switch tag {
	case form.TagMin:
		return fmt.Sprintf(l.GetText(KeyFieldMinLength), l.FieldLabel(field), form.MinLength(field))
	default:
		return fmt.Sprintf(l.GetText(KeyFieldRequired), l.FieldLabel(field))
	}
}

// Notice translates an attachment rejection; empty when err is not one
func (l *Localization) Notice(err error) string {
	switch form.Notice(err) {
	case form.NoticeUnsupportedType:
		return l.GetText(KeyUnsupportedType)
	case form.NoticeFileTooLarge:
		return l.GetText(KeyFileTooLarge)
	}
	return ""
}

// ErrorMessage translates the fixed gateway messages and passes others through
func (l *Localization) ErrorMessage(message string) string {
	switch message {
	case gateway.SubmitErrorMessage:
		return l.GetText(KeySubmitFailed)
	case gateway.LoadErrorMessage:
		return l.GetText(KeyLoadFailed)
	}
	return message
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Donation Board",
		KeyFile:              "File",
		KeySettings:          "Settings",
		KeyRefresh:           "Refresh",
		KeyLanguage:          "Language",
		KeyNewDonation:       "Donate an item",
		KeyDonations:         "Available donations",
		KeyNoDonations:       "No donations yet",
		KeyItemName:          "Item name",
		KeyDescription:       "Description",
		KeyLocation:          "Location",
		KeyContact:           "Contact",
		KeyImage:             "Image",
		KeyDropImage:         "Drop a JPEG or PNG image here, or click to browse",
		KeyBrowse:            "Browse",
		KeyRemove:            "Remove",
		KeySubmit:            "Submit donation",
		KeySubmitting:        "Submitting...",
		KeySubmitSuccess:     "Donation submitted successfully!",
		KeySubmitFailed:      gateway.SubmitErrorMessage,
		KeyLoadFailed:        gateway.LoadErrorMessage,
		KeyFieldRequired:     "%s is required",
		KeyFieldMinLength:    "%s must be at least %d characters",
		KeyUnsupportedType:   form.NoticeUnsupportedType,
		KeyFileTooLarge:      form.NoticeFileTooLarge,
		KeyCannotReadFile:    "Could not read the selected file",
		KeyOpenImage:         "View image",
		KeyAPIBaseURL:        "API base URL",
		KeyRequestTimeout:    "Request timeout (seconds, 0 = none)",
		KeyStrictContact:     "Require contact of at least 10 characters",
		KeyFromEnvironment:   "set by environment",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeySettingsOnRestart: "Connection settings apply after restart.",
		KeyNotice:            "Notice",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Доска пожертвований",
		KeyFile:              "Файл",
		KeySettings:          "Настройки",
		KeyRefresh:           "Обновить",
		KeyLanguage:          "Язык",
		KeyNewDonation:       "Пожертвовать вещь",
		KeyDonations:         "Доступные пожертвования",
		KeyNoDonations:       "Пока нет пожертвований",
		KeyItemName:          "Название",
		KeyDescription:       "Описание",
		KeyLocation:          "Местоположение",
		KeyContact:           "Контакт",
		KeyImage:             "Изображение",
		KeyDropImage:         "Перетащите сюда JPEG или PNG, или нажмите для выбора",
		KeyBrowse:            "Обзор",
		KeyRemove:            "Удалить",
		KeySubmit:            "Отправить",
		KeySubmitting:        "Отправка...",
		KeySubmitSuccess:     "Пожертвование успешно отправлено!",
		KeySubmitFailed:      "Не удалось отправить пожертвование. Попробуйте ещё раз.",
		KeyLoadFailed:        "Не удалось загрузить пожертвования. Попробуйте ещё раз.",
		KeyFieldRequired:     "Поле «%s» обязательно",
		KeyFieldMinLength:    "Поле «%s» должно содержать не менее %d символов",
		KeyUnsupportedType:   "Загрузите изображение JPEG или PNG",
		KeyFileTooLarge:      "Размер файла не должен превышать 5 МБ",
		KeyCannotReadFile:    "Не удалось прочитать выбранный файл",
		KeyOpenImage:         "Открыть изображение",
		KeyAPIBaseURL:        "Базовый URL API",
		KeyRequestTimeout:    "Тайм-аут запроса (секунды, 0 = нет)",
		KeyStrictContact:     "Контакт не короче 10 символов",
		KeyFromEnvironment:   "задано переменной окружения",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeySettingsOnRestart: "Параметры подключения применятся после перезапуска.",
		KeyNotice:            "Внимание",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Quadro de Doações",
		KeyFile:              "Arquivo",
		KeySettings:          "Configurações",
		KeyRefresh:           "Atualizar",
		KeyLanguage:          "Idioma",
		KeyNewDonation:       "Doar um item",
		KeyDonations:         "Doações disponíveis",
		KeyNoDonations:       "Nenhuma doação ainda",
		KeyItemName:          "Nome do item",
		KeyDescription:       "Descrição",
		KeyLocation:          "Localização",
		KeyContact:           "Contato",
		KeyImage:             "Imagem",
		KeyDropImage:         "Solte uma imagem JPEG ou PNG aqui, ou clique para procurar",
		KeyBrowse:            "Procurar",
		KeyRemove:            "Remover",
		KeySubmit:            "Enviar doação",
		KeySubmitting:        "Enviando...",
		KeySubmitSuccess:     "Doação enviada com sucesso!",
		KeySubmitFailed:      "Falha ao enviar a doação. Tente novamente.",
		KeyLoadFailed:        "Falha ao carregar as doações. Tente novamente.",
		KeyFieldRequired:     "%s é obrigatório",
		KeyFieldMinLength:    "%s deve ter pelo menos %d caracteres",
		KeyUnsupportedType:   "Envie uma imagem válida (JPEG ou PNG)",
		KeyFileTooLarge:      "O arquivo não deve exceder 5MB",
		KeyCannotReadFile:    "Não foi possível ler o arquivo selecionado",
		KeyOpenImage:         "Ver imagem",
		KeyAPIBaseURL:        "URL base da API",
		KeyRequestTimeout:    "Tempo limite (segundos, 0 = nenhum)",
		KeyStrictContact:     "Exigir contato com pelo menos 10 caracteres",
		KeyFromEnvironment:   "definido pelo ambiente",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeySettingsOnRestart: "As configurações de conexão valem após reiniciar.",
		KeyNotice:            "Aviso",
	}
}
