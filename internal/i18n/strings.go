// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import "golang.org/x/text/language"

var translations = map[language.Tag]map[Key]string{
	language.English: {
		KeyGenerationFailed: "⚠️ There was an error generating the response. Please try again.",
		KeyLoadFailed:       "An error occurred while loading the model. Please reload.",
		KeyReloadHint:       "Press ctrl+r to reload",
		KeyReady:            "Go!",
		KeyStatus:           "Status: %s",
		KeyPlaceholder:      "Type your message here...",
		KeyCopyCode:         "Copy code",
		KeyCopied:           "Copied!",
		KeyNothingToCopy:    "No code block to copy",
		KeyWelcome:          "Your model runs locally. Nothing leaves this machine.",
	},
	language.Spanish: {
		KeyGenerationFailed: "⚠️ Hubo un error al generar la respuesta. Por favor, inténtalo de nuevo.",
		KeyLoadFailed:       "Se produjo un error al cargar el modelo. Por favor, recarga.",
		KeyReloadHint:       "Pulsa ctrl+r para recargar",
		KeyReady:            "¡Vamos!",
		KeyStatus:           "Estado: %s",
		KeyPlaceholder:      "Escribe tu mensaje aquí...",
		KeyCopyCode:         "Copiar código",
		KeyCopied:           "¡Copiado!",
		KeyNothingToCopy:    "No hay bloque de código para copiar",
		KeyWelcome:          "Tu modelo se ejecuta localmente. Nada sale de esta máquina.",
	},
	language.Japanese: {
		KeyGenerationFailed: "⚠️ 応答の生成中にエラーが発生しました。もう一度お試しください。",
		KeyLoadFailed:       "モデルの読み込み中にエラーが発生しました。再読み込みしてください。",
		KeyReloadHint:       "ctrl+r で再読み込み",
		KeyReady:            "スタート!",
		KeyStatus:           "ステータス: %s",
		KeyPlaceholder:      "ここにメッセージを入力...",
		KeyCopyCode:         "コードをコピー",
		KeyCopied:           "コピーしました!",
		KeyNothingToCopy:    "コピーするコードブロックがありません",
		KeyWelcome:          "モデルはローカルで動作します。データはこのマシンの外に出ません。",
	},
	language.German: {
		KeyGenerationFailed: "⚠️ Beim Generieren der Antwort ist ein Fehler aufgetreten. Bitte versuche es erneut.",
		KeyLoadFailed:       "Beim Laden des Modells ist ein Fehler aufgetreten. Bitte neu laden.",
		KeyReloadHint:       "Drücke ctrl+r zum Neuladen",
		KeyReady:            "Los!",
		KeyStatus:           "Status: %s",
		KeyPlaceholder:      "Gib hier deine Nachricht ein...",
		KeyCopyCode:         "Code kopieren",
		KeyCopied:           "Kopiert!",
		KeyNothingToCopy:    "Kein Codeblock zum Kopieren",
		KeyWelcome:          "Dein Modell läuft lokal. Nichts verlässt diesen Rechner.",
	},
	language.French: {
		KeyGenerationFailed: "⚠️ Une erreur s'est produite lors de la génération de la réponse. Veuillez réessayer.",
		KeyLoadFailed:       "Une erreur s'est produite lors du chargement du modèle. Veuillez recharger.",
		KeyReloadHint:       "Appuyez sur ctrl+r pour recharger",
		KeyReady:            "C'est parti !",
		KeyStatus:           "Statut : %s",
		KeyPlaceholder:      "Tapez votre message ici...",
		KeyCopyCode:         "Copier le code",
		KeyCopied:           "Copié !",
		KeyNothingToCopy:    "Aucun bloc de code à copier",
		KeyWelcome:          "Votre modèle tourne en local. Rien ne quitte cette machine.",
	},
	language.Italian: {
		KeyGenerationFailed: "⚠️ Si è verificato un errore durante la generazione della risposta. Riprova.",
		KeyLoadFailed:       "Si è verificato un errore durante il caricamento del modello. Ricarica.",
		KeyReloadHint:       "Premi ctrl+r per ricaricare",
		KeyReady:            "Via!",
		KeyStatus:           "Stato: %s",
		KeyPlaceholder:      "Scrivi qui il tuo messaggio...",
		KeyCopyCode:         "Copia codice",
		KeyCopied:           "Copiato!",
		KeyNothingToCopy:    "Nessun blocco di codice da copiare",
		KeyWelcome:          "Il tuo modello gira in locale. Nulla lascia questa macchina.",
	},
	language.BrazilianPortuguese: {
		KeyGenerationFailed: "⚠️ Ocorreu um erro ao gerar a resposta. Por favor, tente novamente.",
		KeyLoadFailed:       "Ocorreu um erro ao carregar o modelo. Por favor, recarregue.",
		KeyReloadHint:       "Pressione ctrl+r para recarregar",
		KeyReady:            "Vamos lá!",
		KeyStatus:           "Status: %s",
		KeyPlaceholder:      "Digite sua mensagem aqui...",
		KeyCopyCode:         "Copiar código",
		KeyCopied:           "Copiado!",
		KeyNothingToCopy:    "Nenhum bloco de código para copiar",
		KeyWelcome:          "Seu modelo roda localmente. Nada sai desta máquina.",
	},
	language.Russian: {
		KeyGenerationFailed: "⚠️ Произошла ошибка при генерации ответа. Пожалуйста, попробуйте ещё раз.",
		KeyLoadFailed:       "Произошла ошибка при загрузке модели. Пожалуйста, перезагрузите.",
		KeyReloadHint:       "Нажмите ctrl+r для перезагрузки",
		KeyReady:            "Поехали!",
		KeyStatus:           "Статус: %s",
		KeyPlaceholder:      "Введите сообщение здесь...",
		KeyCopyCode:         "Копировать код",
		KeyCopied:           "Скопировано!",
		KeyNothingToCopy:    "Нет блока кода для копирования",
		KeyWelcome:          "Модель работает локально. Данные не покидают этот компьютер.",
	},
	language.Arabic: {
		KeyGenerationFailed: "⚠️ حدث خطأ أثناء إنشاء الرد. يرجى المحاولة مرة أخرى.",
		KeyLoadFailed:       "حدث خطأ أثناء تحميل النموذج. يرجى إعادة التحميل.",
		KeyReloadHint:       "اضغط ctrl+r لإعادة التحميل",
		KeyReady:            "انطلق!",
		KeyStatus:           "الحالة: %s",
		KeyPlaceholder:      "اكتب رسالتك هنا...",
		KeyCopyCode:         "نسخ الكود",
		KeyCopied:           "تم النسخ!",
		KeyNothingToCopy:    "لا توجد شيفرة لنسخها",
		KeyWelcome:          "يعمل النموذج محليًا. لا شيء يغادر هذا الجهاز.",
	},
	language.Czech: {
		KeyGenerationFailed: "⚠️ Při generování odpovědi došlo k chybě. Zkuste to prosím znovu.",
		KeyLoadFailed:       "Při načítání modelu došlo k chybě. Načtěte jej prosím znovu.",
		KeyReloadHint:       "Stiskněte ctrl+r pro opětovné načtení",
		KeyReady:            "Jedeme!",
		KeyStatus:           "Stav: %s",
		KeyPlaceholder:      "Sem napište zprávu...",
		KeyCopyCode:         "Kopírovat kód",
		KeyCopied:           "Zkopírováno!",
		KeyNothingToCopy:    "Žádný blok kódu ke zkopírování",
		KeyWelcome:          "Model běží lokálně. Nic neopouští tento počítač.",
	},
	language.SimplifiedChinese: {
		KeyGenerationFailed: "⚠️ 生成回复时出错。请重试。",
		KeyLoadFailed:       "加载模型时出错。请重新加载。",
		KeyReloadHint:       "按 ctrl+r 重新加载",
		KeyReady:            "开始！",
		KeyStatus:           "状态：%s",
		KeyPlaceholder:      "在此输入消息...",
		KeyCopyCode:         "复制代码",
		KeyCopied:           "已复制！",
		KeyNothingToCopy:    "没有可复制的代码块",
		KeyWelcome:          "模型在本地运行。数据不会离开这台机器。",
	},
	language.Korean: {
		KeyGenerationFailed: "⚠️ 응답을 생성하는 중 오류가 발생했습니다. 다시 시도해 주세요.",
		KeyLoadFailed:       "모델을 불러오는 중 오류가 발생했습니다. 다시 불러와 주세요.",
		KeyReloadHint:       "ctrl+r 을 눌러 다시 불러오기",
		KeyReady:            "시작!",
		KeyStatus:           "상태: %s",
		KeyPlaceholder:      "여기에 메시지를 입력하세요...",
		KeyCopyCode:         "코드 복사",
		KeyCopied:           "복사됨!",
		KeyNothingToCopy:    "복사할 코드 블록이 없습니다",
		KeyWelcome:          "모델은 로컬에서 실행됩니다. 어떤 데이터도 이 기기를 벗어나지 않습니다.",
	},
	language.EuropeanPortuguese: {
		KeyGenerationFailed: "⚠️ Ocorreu um erro ao gerar a resposta. Por favor, tente novamente.",
		KeyLoadFailed:       "Ocorreu um erro ao carregar o modelo. Por favor, recarregue.",
		KeyReloadHint:       "Prima ctrl+r para recarregar",
		KeyReady:            "Vamos!",
		KeyStatus:           "Estado: %s",
		KeyPlaceholder:      "Escreva a sua mensagem aqui...",
		KeyCopyCode:         "Copiar código",
		KeyCopied:           "Copiado!",
		KeyNothingToCopy:    "Nenhum bloco de código para copiar",
		KeyWelcome:          "O seu modelo corre localmente. Nada sai desta máquina.",
	},
}
