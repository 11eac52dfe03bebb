package apierrors

const (
	MsgInternal        = "internalError"
	MsgUnauthenticated = "unauthenticated"
	MsgInvalidID       = "invalidID"

	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgInvalidParent      = "invalidParent"
	MsgSubtaskQuadrant    = "subtaskQuadrant"
	MsgFailListSubtasks   = "failListSubtasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailBulkDelete     = "failBulkDelete"
	MsgFailTaskStats      = "failTaskStats"

	MsgInvalidRoutineTaskPayload = "invalidRoutineTaskPayload"
	MsgRoutineTaskNotFound       = "routineTaskNotFound"
	MsgFailListRoutineTasks      = "failListRoutineTasks"
	MsgFailCreateRoutineTask     = "failCreateRoutineTask"
	MsgFailUpdateRoutineTask     = "failUpdateRoutineTask"
	MsgFailDeleteRoutineTask     = "failDeleteRoutineTask"
	MsgFailUseRoutineTask        = "failUseRoutineTask"

	MsgInvalidCalendarQuery = "invalidCalendarQuery"
	MsgFailCalendar         = "failCalendar"
	MsgInvalidExport        = "invalidExport"
	MsgFailExport           = "failExport"
)
