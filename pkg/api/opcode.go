package api

// Opcode tags a block with the behavior that executes or evaluates it
type Opcode string

// Motion
const (
	OpMoveSteps        Opcode = "motion_movesteps"
	OpTurnRight        Opcode = "motion_turnright"
	OpTurnLeft         Opcode = "motion_turnleft"
	OpGoTo             Opcode = "motion_goto"
	OpGoToMenu         Opcode = "motion_goto_menu"
	OpGoToXY           Opcode = "motion_gotoxy"
	OpGlideTo          Opcode = "motion_glideto"
	OpGlideToMenu      Opcode = "motion_glideto_menu"
	OpGlideSecsToXY    Opcode = "motion_glidesecstoxy"
	OpPointInDirection Opcode = "motion_pointindirection"
	OpPointTowards     Opcode = "motion_pointtowards"
	OpPointTowardsMenu Opcode = "motion_pointtowards_menu"
	OpChangeXBy        Opcode = "motion_changexby"
	OpSetX             Opcode = "motion_setx"
	OpChangeYBy        Opcode = "motion_changeyby"
	OpSetY             Opcode = "motion_sety"
	OpIfOnEdgeBounce   Opcode = "motion_ifonedgebounce"
	OpSetRotationStyle Opcode = "motion_setrotationstyle"
	OpXPosition        Opcode = "motion_xposition"
	OpYPosition        Opcode = "motion_yposition"
	OpDirection        Opcode = "motion_direction"
)

// Looks
const (
	OpSayForSecs            Opcode = "looks_sayforsecs"
	OpSay                   Opcode = "looks_say"
	OpThinkForSecs          Opcode = "looks_thinkforsecs"
	OpThink                 Opcode = "looks_think"
	OpSwitchCostumeTo       Opcode = "looks_switchcostumeto"
	OpCostume               Opcode = "looks_costume"
	OpNextCostume           Opcode = "looks_nextcostume"
	OpSwitchBackdropTo      Opcode = "looks_switchbackdropto"
	OpSwitchBackdropAndWait Opcode = "looks_switchbackdroptoandwait"
	OpBackdrops             Opcode = "looks_backdrops"
	OpNextBackdrop          Opcode = "looks_nextbackdrop"
	OpChangeSizeBy          Opcode = "looks_changesizeby"
	OpSetSizeTo             Opcode = "looks_setsizeto"
	OpChangeEffectBy        Opcode = "looks_changeeffectby"
	OpSetEffectTo           Opcode = "looks_seteffectto"
	OpClearGraphicEffects   Opcode = "looks_cleargraphiceffects"
	OpShow                  Opcode = "looks_show"
	OpHide                  Opcode = "looks_hide"
	OpGoToFrontBack         Opcode = "looks_gotofrontback"
	OpGoForwardBackward     Opcode = "looks_goforwardbackwardlayers"
	OpCostumeNumberName     Opcode = "looks_costumenumbername"
	OpBackdropNumberName    Opcode = "looks_backdropnumbername"
	OpSize                  Opcode = "looks_size"
)

// Sound
const (
	OpPlaySound          Opcode = "sound_play"
	OpPlaySoundUntilDone Opcode = "sound_playuntildone"
	OpSoundsMenu         Opcode = "sound_sounds_menu"
	OpStopAllSounds      Opcode = "sound_stopallsounds"
	OpChangeSoundEffect  Opcode = "sound_changeeffectby"
	OpSetSoundEffect     Opcode = "sound_seteffectto"
	OpClearSoundEffects  Opcode = "sound_cleareffects"
	OpChangeVolumeBy     Opcode = "sound_changevolumeby"
	OpSetVolumeTo        Opcode = "sound_setvolumeto"
	OpVolume             Opcode = "sound_volume"
)

// Events
const (
	OpWhenFlagClicked       Opcode = "event_whenflagclicked"
	OpWhenKeyPressed        Opcode = "event_whenkeypressed"
	OpWhenThisSpriteClicked Opcode = "event_whenthisspriteclicked"
	OpWhenStageClicked      Opcode = "event_whenstageclicked"
	OpWhenBackdropSwitches  Opcode = "event_whenbackdropswitchesto"
	OpWhenGreaterThan       Opcode = "event_whengreaterthan"
	OpWhenBroadcastReceived Opcode = "event_whenbroadcastreceived"
	OpBroadcast             Opcode = "event_broadcast"
	OpBroadcastAndWait      Opcode = "event_broadcastandwait"
	OpBroadcastMenu         Opcode = "event_broadcast_menu"
)

// Control
const (
	OpWait            Opcode = "control_wait"
	OpRepeat          Opcode = "control_repeat"
	OpForever         Opcode = "control_forever"
	OpIf              Opcode = "control_if"
	OpIfElse          Opcode = "control_if_else"
	OpWaitUntil       Opcode = "control_wait_until"
	OpRepeatUntil     Opcode = "control_repeat_until"
	OpStop            Opcode = "control_stop"
	OpStartAsClone    Opcode = "control_start_as_clone"
	OpCreateClone     Opcode = "control_create_clone_of"
	OpCreateCloneMenu Opcode = "control_create_clone_of_menu"
	OpDeleteThisClone Opcode = "control_delete_this_clone"
)

// Sensing
const (
	OpTouchingObject     Opcode = "sensing_touchingobject"
	OpTouchingObjectMenu Opcode = "sensing_touchingobjectmenu"
	OpTouchingColor      Opcode = "sensing_touchingcolor"
	OpColorTouchingColor Opcode = "sensing_coloristouchingcolor"
	OpDistanceTo         Opcode = "sensing_distanceto"
	OpDistanceToMenu     Opcode = "sensing_distancetomenu"
	OpAskAndWait         Opcode = "sensing_askandwait"
	OpAnswer             Opcode = "sensing_answer"
	OpKeyPressed         Opcode = "sensing_keypressed"
	OpKeyOptions         Opcode = "sensing_keyoptions"
	OpMouseDown          Opcode = "sensing_mousedown"
	OpMouseX             Opcode = "sensing_mousex"
	OpMouseY             Opcode = "sensing_mousey"
	OpSetDragMode        Opcode = "sensing_setdragmode"
	OpLoudness           Opcode = "sensing_loudness"
	OpTimer              Opcode = "sensing_timer"
	OpResetTimer         Opcode = "sensing_resettimer"
	OpOf                 Opcode = "sensing_of"
	OpOfObjectMenu       Opcode = "sensing_of_object_menu"
	OpCurrent            Opcode = "sensing_current"
	OpDaysSince2000      Opcode = "sensing_dayssince2000"
	OpUsername           Opcode = "sensing_username"
)

// Operators
const (
	OpAdd      Opcode = "operator_add"
	OpSubtract Opcode = "operator_subtract"
	OpMultiply Opcode = "operator_multiply"
	OpDivide   Opcode = "operator_divide"
	OpRandom   Opcode = "operator_random"
	OpGT       Opcode = "operator_gt"
	OpLT       Opcode = "operator_lt"
	OpEquals   Opcode = "operator_equals"
	OpAnd      Opcode = "operator_and"
	OpOr       Opcode = "operator_or"
	OpNot      Opcode = "operator_not"
	OpJoin     Opcode = "operator_join"
	OpLetterOf Opcode = "operator_letter_of"
	OpLength   Opcode = "operator_length"
	OpContains Opcode = "operator_contains"
	OpMod      Opcode = "operator_mod"
	OpRound    Opcode = "operator_round"
	OpMathOp   Opcode = "operator_mathop"
)

// Data
const (
	OpVariable          Opcode = "data_variable"
	OpSetVariableTo     Opcode = "data_setvariableto"
	OpChangeVariableBy  Opcode = "data_changevariableby"
	OpShowVariable      Opcode = "data_showvariable"
	OpHideVariable      Opcode = "data_hidevariable"
	OpListContents      Opcode = "data_listcontents"
	OpAddToList         Opcode = "data_addtolist"
	OpDeleteOfList      Opcode = "data_deleteoflist"
	OpDeleteAllOfList   Opcode = "data_deletealloflist"
	OpInsertAtList      Opcode = "data_insertatlist"
	OpReplaceItemOfList Opcode = "data_replaceitemoflist"
	OpItemOfList        Opcode = "data_itemoflist"
	OpItemNumOfList     Opcode = "data_itemnumoflist"
	OpLengthOfList      Opcode = "data_lengthoflist"
	OpListContainsItem  Opcode = "data_listcontainsitem"
	OpShowList          Opcode = "data_showlist"
	OpHideList          Opcode = "data_hidelist"
)

// Procedures
const (
	OpProcDefinition   Opcode = "procedures_definition"
	OpProcPrototype    Opcode = "procedures_prototype"
	OpProcCall         Opcode = "procedures_call"
	OpArgumentReporter Opcode = "argument_reporter_string_number"
	OpArgumentBoolean  Opcode = "argument_reporter_boolean"
)

// Primitive menus and shadows
const (
	OpMathNumber         Opcode = "math_number"
	OpMathPositiveNumber Opcode = "math_positive_number"
	OpMathWholeNumber    Opcode = "math_whole_number"
	OpMathInteger        Opcode = "math_integer"
	OpMathAngle          Opcode = "math_angle"
	OpColorPicker        Opcode = "colour_picker"
	OpText               Opcode = "text"
)
