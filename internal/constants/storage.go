package constants

// Collection keys for the persistent store. All collections share the
// store's single namespace (file or database); each key holds an
// independently-serialized snapshot of that collection's full contents.
const (
	KeyHabits      = "habits"
	KeyCompletions = "completions"
	KeyTemplates   = "templates"
	KeyEntries     = "entries"
	KeySettings    = "settings"
	KeyCategories  = "categories"
	KeyRewards     = "rewards"
	KeyRedemptions = "redemptions"
)

// CollectionKeys lists every known collection key. Export, import and
// clear-all iterate this set, so a new collection only needs to be added
// here and in the typed accessors.
var CollectionKeys = []string{
	KeyHabits,
	KeyCompletions,
	KeyTemplates,
	KeyEntries,
	KeySettings,
	KeyCategories,
	KeyRewards,
	KeyRedemptions,
}
