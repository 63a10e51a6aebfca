package dialog

type State string

const (
	StateIdle State = "idle"

	// Бронирование
	StateBookDate         State = "book_date"
	StateBookAdults       State = "book_adults"
	StateBookChildBed     State = "book_child_bed"   // дети с местом
	StateBookChildNoBed   State = "book_child_nobed" // дети без места
	StateBookRoom         State = "book_room"
	StateBookAddons       State = "book_addons"
	StateBookName         State = "book_name"
	StateBookEmail        State = "book_email"
	StateBookPhone        State = "book_phone"
	StateBookConfirm      State = "book_confirm"
	StateBookAwaitPayment State = "book_await_payment"

	// Админ: ступени цен
	StateAdmTiersImport State = "adm_tiers_import" // ожидание Excel со ступенями
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
