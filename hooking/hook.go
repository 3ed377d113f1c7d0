// Package hooking lets observers follow the stages of a memory generation.
package hooking

// HookPos names a stage of the generation at which hooks are invoked.
type HookPos struct {
	Name string
}

// Generation stages.
var (
	// HookPosBeforeFit is invoked with the request as the item.
	HookPosBeforeFit = &HookPos{Name: "BeforeFit"}

	// HookPosAfterFit is invoked with the request as the item and the
	// fitting plan as the detail.
	HookPosAfterFit = &HookPos{Name: "AfterFit"}

	// HookPosAfterCompose is invoked with the request as the item and the
	// composition result as the detail.
	HookPosAfterCompose = &HookPos{Name: "AfterCompose"}

	// HookPosFallback is invoked when no physical body can be generated.
	// The detail is the reason.
	HookPosFallback = &HookPos{Name: "Fallback"}

	// HookPosModuleWritten is invoked with the request as the item and the
	// generated output as the detail.
	HookPosModuleWritten = &HookPos{Name: "ModuleWritten"}
)

// HookCtx holds the information about the site that triggers a hook.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase implements Hookable for embedding types.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hookList {
		if existing == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
