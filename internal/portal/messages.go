package portal

// Notices shown to the user.
const (
	MsgTransport     = "서버와 통신 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgLoginRequired = "로그인이 필요합니다."

	MsgSearchFailed = "도메인 검색에 실패했습니다."

	VerdictClickable = "[클릭하여 등록 가능]"
	VerdictLogin     = "[로그인 후 등록 가능]"
	VerdictTaken     = "이미 등록되었거나 제한된 도메인"

	MsgDetailForbidden = "해당 도메인에 대한 권한이 없습니다."
	MsgSubmitOK        = "레코드가 저장되었습니다."
	MsgSubmitFailed    = "레코드 저장에 실패했습니다."

	MsgNoDomains     = "보유한 도메인이 없습니다."
	MsgDomainsFailed = "도메인 목록을 불러오지 못했습니다."

	MsgRenewOK        = "도메인 기간이 연장되었습니다."
	MsgRenewForbidden = "해당 도메인을 연장할 권한이 없습니다."
	MsgRenewNotFound  = "도메인을 찾을 수 없습니다."
	MsgRenewNotYet    = "아직 연장할 수 없습니다. 만료 1개월 전부터 연장할 수 있습니다."

	MsgDeleteOK        = "도메인이 삭제되었습니다."
	MsgDeleteForbidden = "해당 도메인을 삭제할 권한이 없습니다."
	MsgDeleteNotFound  = "삭제할 도메인을 찾을 수 없습니다."
	MsgDeleteFailed    = "도메인 삭제에 실패했습니다."

	MsgLoggedOut   = "로그아웃되었습니다."
	MsgLeaveOK     = "회원탈퇴가 완료되었습니다."
	MsgLeaveFailed = "회원탈퇴에 실패했습니다."
)
